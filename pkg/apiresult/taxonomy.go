// Package apiresult defines the closed result taxonomy shared by every API
// surface and the response envelope that carries it over the wire.
//
// Codes are wire-stable: clients branch on the numeric resultCode, so an
// entry's code never changes once shipped. The HTTP transport status is
// derived from the code's leading family (400xx -> 400, 401xx -> 401, ...)
// rather than stored per entry.
package apiresult

import "net/http"

// Key names an entry in the result catalog.
type Key string

const (
	Success Key = "SUCCESS"

	InvalidInput         Key = "INVALID_INPUT"
	MissingRequiredField Key = "MISSING_REQUIRED_FIELD"
	InvalidPostIDFormat  Key = "INVALID_POST_ID_FORMAT"
	AlreadyLoggedOut     Key = "ALREADY_LOGGED_OUT"

	NotAuthenticated Key = "NOT_AUTHENTICATED"
	LoginFailed      Key = "LOGIN_FAILED"
	InvalidToken     Key = "INVALID_TOKEN"

	ForbiddenAccess Key = "FORBIDDEN_ACCESS"

	ResourceNotFound Key = "RESOURCE_NOT_FOUND"
	PostNotFound     Key = "POST_NOT_FOUND"
	UserNotFound     Key = "USER_NOT_FOUND"

	ServerError          Key = "SERVER_ERROR"
	DatabaseError        Key = "DATABASE_ERROR"
	TokenGenerationError Key = "TOKEN_GENERATION_ERROR"
)

// Entry is one row of the catalog: the wire code and its default message.
type Entry struct {
	Code    int
	Message string
}

var catalog = map[Key]Entry{
	Success: {Code: 0, Message: "Request processed successfully."},

	InvalidInput:         {Code: 40001, Message: "Invalid input. Please check your request."},
	MissingRequiredField: {Code: 40002, Message: "A required field is missing."},
	InvalidPostIDFormat:  {Code: 40003, Message: "The post ID format is invalid."},
	AlreadyLoggedOut:     {Code: 40004, Message: "Already logged out or the session is no longer valid."},

	NotAuthenticated: {Code: 40101, Message: "Authentication required. Please log in and try again."},
	LoginFailed:      {Code: 40102, Message: "Login failed. Check your username or password."},
	InvalidToken:     {Code: 40103, Message: "Invalid token. Please log in again."},

	ForbiddenAccess: {Code: 40301, Message: "You do not have permission to access this resource."},

	ResourceNotFound: {Code: 40401, Message: "The requested resource was not found."},
	PostNotFound:     {Code: 40402, Message: "No post exists with that ID."},
	UserNotFound:     {Code: 40403, Message: "No such user was found."},

	ServerError:          {Code: 50001, Message: "An error occurred while processing the request. Please try again later."},
	DatabaseError:        {Code: 50002, Message: "A database error occurred."},
	TokenGenerationError: {Code: 50003, Message: "Failed to generate a session token."},
}

// Lookup returns the catalog entry for key. Unknown keys report ok=false and
// fall back to the generic SERVER_ERROR entry so callers always have a valid
// entry to serve.
func Lookup(key Key) (Entry, bool) {
	entry, ok := catalog[key]
	if !ok {
		return catalog[ServerError], false
	}
	return entry, true
}

// All returns a copy of the catalog.
func All() map[Key]Entry {
	out := make(map[Key]Entry, len(catalog))
	for key, entry := range catalog {
		out[key] = entry
	}
	return out
}

// Status maps the entry's code family to an HTTP status.
func (e Entry) Status() int {
	switch e.Code / 100 {
	case 0:
		return http.StatusOK
	case 400:
		return http.StatusBadRequest
	case 401:
		return http.StatusUnauthorized
	case 403:
		return http.StatusForbidden
	case 404:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
