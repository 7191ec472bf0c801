package google

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetOAuthConfig(t *testing.T) {
	conf := GetOAuthConfig()

	assert.Equal(t, DefaultOAuthScopes, conf.Scopes)
	assert.Equal(t, "urn:ietf:wg:oauth:2.0:oob", conf.RedirectURL)
}

func TestScopesAreReadOnly(t *testing.T) {
	for _, scope := range DefaultOAuthScopes {
		assert.True(t, strings.HasSuffix(scope, ".readonly"),
			"slotfinder never writes to calendars; scope %s must be read-only", scope)
	}
}

func TestGetAuthURLForAccount(t *testing.T) {
	url := GetAuthURLForAccount("work")

	assert.Contains(t, url, "accounts.google.com")
	assert.Contains(t, url, "state=account%3Awork")
	assert.Contains(t, url, "calendar.readonly")
}

func TestHasTokenForAccount(t *testing.T) {
	// Point the cache dir at an empty temp dir.
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	assert.False(t, HasTokenForAccount("default"))
	assert.False(t, HasTokenForAccount(""))
}

func TestTokenFilePerAccount(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")

	assert.Equal(t, filepath.Join("/tmp/cache", "slotfinder", "work.token"), tokenFile("work"))
	assert.NotEqual(t, tokenFile("work"), tokenFile("personal"))
}
