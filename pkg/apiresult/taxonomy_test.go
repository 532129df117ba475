package apiresult

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCatalogCodesAreStable pins every key's code and derived status. Changing
// any row here breaks deployed clients that branch on the numeric code.
func TestCatalogCodesAreStable(t *testing.T) {
	expected := []struct {
		key    Key
		code   int
		status int
	}{
		{Success, 0, http.StatusOK},
		{InvalidInput, 40001, http.StatusBadRequest},
		{MissingRequiredField, 40002, http.StatusBadRequest},
		{InvalidPostIDFormat, 40003, http.StatusBadRequest},
		{AlreadyLoggedOut, 40004, http.StatusBadRequest},
		{NotAuthenticated, 40101, http.StatusUnauthorized},
		{LoginFailed, 40102, http.StatusUnauthorized},
		{InvalidToken, 40103, http.StatusUnauthorized},
		{ForbiddenAccess, 40301, http.StatusForbidden},
		{ResourceNotFound, 40401, http.StatusNotFound},
		{PostNotFound, 40402, http.StatusNotFound},
		{UserNotFound, 40403, http.StatusNotFound},
		{ServerError, 50001, http.StatusInternalServerError},
		{DatabaseError, 50002, http.StatusInternalServerError},
		{TokenGenerationError, 50003, http.StatusInternalServerError},
	}

	for _, tc := range expected {
		entry, ok := Lookup(tc.key)
		require.True(t, ok, "key %s must be in the catalog", tc.key)
		assert.Equal(t, tc.code, entry.Code, "code for %s", tc.key)
		assert.Equal(t, tc.status, entry.Status(), "status for %s", tc.key)
		assert.NotEmpty(t, entry.Message, "message for %s", tc.key)
	}
	assert.Len(t, All(), len(expected), "catalog and expectation table must cover the same keys")
}

func TestCodesNeverCollide(t *testing.T) {
	seen := make(map[int]Key)
	for key, entry := range All() {
		if prev, dup := seen[entry.Code]; dup {
			t.Fatalf("code %d assigned to both %s and %s", entry.Code, prev, key)
		}
		seen[entry.Code] = key
	}
}

func TestLookupUnknownKeyFallsBack(t *testing.T) {
	entry, ok := Lookup(Key("NO_SUCH_KEY"))
	assert.False(t, ok)
	assert.Equal(t, 50001, entry.Code, "unknown keys must serve the generic server error")
}

func TestStatusUnknownFamilyDefaultsToServer(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, Entry{Code: 99901}.Status())
}

// TestLookupIsStableAcrossCalls guards against any mutation of the catalog at
// lookup time.
func TestLookupIsStableAcrossCalls(t *testing.T) {
	first, _ := Lookup(LoginFailed)
	for range 100 {
		again, _ := Lookup(LoginFailed)
		require.Equal(t, first, again)
	}
}
