package handler_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"pinboard/internal/audit"
	"pinboard/internal/auth"
	authhandler "pinboard/internal/auth/handler"
	"pinboard/internal/identity"
	"pinboard/internal/platform/metrics"
	"pinboard/internal/platform/middleware"
	"pinboard/internal/session"
	"pinboard/pkg/apiresult"
	"pinboard/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	router http.Handler
	sink   *audit.MemorySink
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := identity.NewInMemoryStore()
	users.Add("testuser", "password")
	s.sink = audit.NewMemorySink()
	service := auth.NewService(users, session.NewRegistry(),
		audit.NewPublisher(s.sink, logger), metrics.New(prometheus.NewRegistry()), logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	authhandler.New(service, logger).Register(r, middleware.RequireSession(service, logger))
	s.router = r
}

func (s *HandlerSuite) login(username, password string) *apiresult.Envelope {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/auth/login",
		map[string]string{"username": username, "password": password})
	rec := testutil.DoRequest(s.router, req)
	env := testutil.DecodeEnvelope(s.T(), rec)
	return &env
}

func (s *HandlerSuite) loginToken() string {
	env := s.login("testuser", "password")
	s.Require().True(env.OK())
	data := env.Data.(map[string]any)
	token, _ := data["token"].(string)
	s.Require().NotEmpty(token)
	return token
}

func (s *HandlerSuite) TestLogin() {
	s.Run("valid credentials", func() {
		env := s.login("testuser", "password")
		s.Equal(0, env.ResultCode)

		data := env.Data.(map[string]any)
		s.NotEmpty(data["token"])
		user := data["user"].(map[string]any)
		s.Equal("testuser", user["username"])
		s.NotContains(user, "password")
	})

	s.Run("wrong password", func() {
		env := s.login("testuser", "wrong")
		s.Equal(40102, env.ResultCode)
		s.Nil(env.Data)
	})

	s.Run("unknown username gets the same code", func() {
		env := s.login("ghost", "password")
		s.Equal(40102, env.ResultCode)
	})

	s.Run("blank username", func() {
		env := s.login("", "password")
		s.Equal(40002, env.ResultCode)
		s.Equal("Both username and password are required.", env.ResultMessage)
	})

	s.Run("blank password", func() {
		env := s.login("testuser", "")
		s.Equal(40002, env.ResultCode)
	})

	s.Run("malformed JSON body", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		rec := testutil.DoRequest(s.router, req)
		env := testutil.DecodeEnvelope(s.T(), rec)
		s.Equal(40001, env.ResultCode)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("empty body is a missing field, not malformed input", func() {
		req := testutil.NewRequest(s.T(), http.MethodPost, "/api/auth/login")
		rec := testutil.DoRequest(s.router, req)
		env := testutil.DecodeEnvelope(s.T(), rec)
		s.Equal(40002, env.ResultCode)
	})
}

func (s *HandlerSuite) TestLoginStatusCodes() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/auth/login",
		map[string]string{"username": "testuser", "password": "wrong"})
	rec := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusUnauthorized, rec.Code)

	env := testutil.DecodeEnvelope(s.T(), rec)
	s.Equal(40102, env.ResultCode)
}

func (s *HandlerSuite) TestLogout() {
	token := s.loginToken()

	s.Run("first logout succeeds", func() {
		req := testutil.NewRequest(s.T(), http.MethodPost, "/api/auth/logout")
		req.Header.Set("Authorization", "Bearer "+token)
		rec := testutil.DoRequest(s.router, req)
		env := testutil.DecodeEnvelope(s.T(), rec)
		s.Equal(0, env.ResultCode)
	})

	s.Run("second logout of the same token reports already logged out", func() {
		req := testutil.NewRequest(s.T(), http.MethodPost, "/api/auth/logout")
		req.Header.Set("Authorization", "Bearer "+token)
		rec := testutil.DoRequest(s.router, req)
		env := testutil.DecodeEnvelope(s.T(), rec)
		s.Equal(40004, env.ResultCode)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("logout without a token", func() {
		req := testutil.NewRequest(s.T(), http.MethodPost, "/api/auth/logout")
		rec := testutil.DoRequest(s.router, req)
		env := testutil.DecodeEnvelope(s.T(), rec)
		s.Equal(40101, env.ResultCode)
	})
}

func (s *HandlerSuite) TestMe() {
	token := s.loginToken()

	s.Run("with an active session", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/auth/me")
		req.Header.Set("Authorization", "Bearer "+token)
		rec := testutil.DoRequest(s.router, req)
		env := testutil.DecodeEnvelope(s.T(), rec)
		s.Require().Equal(0, env.ResultCode)

		user := env.Data.(map[string]any)["user"].(map[string]any)
		s.Equal("testuser", user["username"])
	})

	s.Run("without a token", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/auth/me")
		rec := testutil.DoRequest(s.router, req)
		env := testutil.DecodeEnvelope(s.T(), rec)
		s.Equal(40101, env.ResultCode)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("with a bogus token", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/auth/me")
		req.Header.Set("Authorization", "Bearer token_1_bogus_0")
		rec := testutil.DoRequest(s.router, req)
		env := testutil.DecodeEnvelope(s.T(), rec)
		s.Equal(40101, env.ResultCode)
	})

	s.Run("after logout the token is rejected", func() {
		logout := testutil.NewRequest(s.T(), http.MethodPost, "/api/auth/logout")
		logout.Header.Set("Authorization", "Bearer "+token)
		testutil.DoRequest(s.router, logout)

		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/auth/me")
		req.Header.Set("Authorization", "Bearer "+token)
		rec := testutil.DoRequest(s.router, req)
		env := testutil.DecodeEnvelope(s.T(), rec)
		s.Equal(40101, env.ResultCode)
	})
}

func (s *HandlerSuite) TestSessions() {
	first := s.loginToken()
	second := s.loginToken()
	_ = first

	req := testutil.NewRequest(s.T(), http.MethodGet, "/api/auth/sessions")
	req.Header.Set("Authorization", "Bearer "+second)
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0")
	rec := testutil.DoRequest(s.router, req)
	env := testutil.DecodeEnvelope(s.T(), rec)
	s.Require().Equal(0, env.ResultCode)

	sessions := env.Data.(map[string]any)["sessions"].([]any)
	s.Require().Len(sessions, 2)

	var current int
	for _, raw := range sessions {
		sess := raw.(map[string]any)
		s.NotContains(sess, "token", "tokens are never echoed back")
		if sess["isCurrent"] == true {
			current++
		}
	}
	s.Equal(1, current, "exactly one session is the caller's")
}

func (s *HandlerSuite) TestAuditTrail() {
	token := s.loginToken()
	s.login("testuser", "wrong")

	logout := testutil.NewRequest(s.T(), http.MethodPost, "/api/auth/logout")
	logout.Header.Set("Authorization", "Bearer "+token)
	testutil.DoRequest(s.router, logout)

	events := s.sink.Events()
	s.Require().Len(events, 3)
	s.Equal(audit.ActionLogin, events[0].Action)
	s.Equal(audit.ActionLoginFailed, events[1].Action)
	s.Equal(audit.ActionLogout, events[2].Action)
	for _, e := range events {
		s.NotEmpty(e.ID)
		s.NotEmpty(e.RequestID, "audit events carry the request ID from the middleware chain")
	}
}
