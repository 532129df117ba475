package apiresult

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// WriteSuccess replies 200 with a success envelope carrying data.
func WriteSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, NewSuccess(data))
}

// WriteSuccessStatus replies with a success envelope and an explicit status,
// for endpoints that create resources.
func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, NewSuccess(data))
}

// WriteFailure replies with the catalog entry for key, at the status derived
// from the code family.
func WriteFailure(w http.ResponseWriter, key Key) {
	writeFailure(w, key, "", nil, 0)
}

// WriteFailureMessage is WriteFailure with an overridden message.
func WriteFailureMessage(w http.ResponseWriter, key Key, msg string) {
	writeFailure(w, key, msg, nil, 0)
}

// WriteFailureDetail is WriteFailure with structured validation detail
// attached as data.
func WriteFailureDetail(w http.ResponseWriter, key Key, msg string, detail any) {
	writeFailure(w, key, msg, detail, 0)
}

// WriteFailureStatus is WriteFailure with an explicit transport status.
func WriteFailureStatus(w http.ResponseWriter, key Key, status int) {
	writeFailure(w, key, "", nil, status)
}

func writeFailure(w http.ResponseWriter, key Key, msg string, detail any, status int) {
	entry, ok := Lookup(key)
	if !ok {
		// A miss here is a taxonomy defect in the handler, not a client
		// condition. Serve the generic entry and leave a trail.
		slog.Warn("unknown result key, serving SERVER_ERROR", "key", string(key))
		key = ServerError
	}
	if status == 0 {
		status = entry.Status()
	}
	env := NewFailure(key).WithMessage(msg)
	if detail != nil {
		env = env.WithDetail(detail)
	}
	writeJSON(w, status, env)
}

func writeJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("failed to encode response envelope", "error", err)
	}
}
