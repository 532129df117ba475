package config

import (
	"log/slog"
	"os"
	"strings"
)

// Server captures process-level configuration sourced from the environment.
type Server struct {
	Addr         string
	LogLevel     slog.Level
	SeedUsername string
	SeedPassword string
	KafkaBrokers []string
	AuditTopic   string
	TraceStdout  bool
}

// FromEnv builds a Server config from environment variables so main stays
// lean. Every value has a development default.
func FromEnv() Server {
	addr := os.Getenv("PINBOARD_ADDR")
	if addr == "" {
		addr = ":5001"
	}

	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("PINBOARD_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	seedUser := os.Getenv("PINBOARD_SEED_USERNAME")
	if seedUser == "" {
		seedUser = "testuser"
	}
	seedPass := os.Getenv("PINBOARD_SEED_PASSWORD")
	if seedPass == "" {
		seedPass = "password"
	}

	var brokers []string
	if raw := os.Getenv("PINBOARD_KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}
	topic := os.Getenv("PINBOARD_AUDIT_TOPIC")
	if topic == "" {
		topic = "pinboard.audit"
	}

	traceStdout := false
	switch strings.ToLower(os.Getenv("PINBOARD_TRACE_STDOUT")) {
	case "1", "true", "yes":
		traceStdout = true
	}

	return Server{
		Addr:         addr,
		LogLevel:     level,
		SeedUsername: seedUser,
		SeedPassword: seedPass,
		KafkaBrokers: brokers,
		AuditTopic:   topic,
		TraceStdout:  traceStdout,
	}
}
