package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func tempSessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestSessionSurvivesRestart(t *testing.T) {
	path := tempSessionPath(t)

	store, err := NewStore(path, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, store.Current())

	p := Principal{ID: 7, Name: "Alice Martin", Email: "alice@example.com", Role: "USER", Token: "tok-123"}
	require.NoError(t, store.Login(p))

	// A fresh store over the same file resumes the session.
	reopened, err := NewStore(path, zap.NewNop())
	require.NoError(t, err)
	current := reopened.Current()
	require.NotNil(t, current)
	assert.Equal(t, p, *current)
}

func TestLogoutKeepsTheme(t *testing.T) {
	path := tempSessionPath(t)
	store, err := NewStore(path, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, store.Login(Principal{ID: 1, Email: "admin@proxym.com", Role: "ADMIN", Token: "t"}))
	require.NoError(t, store.SetTheme(ThemeDark))
	require.NoError(t, store.Logout())

	reopened, err := NewStore(path, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, reopened.Current())
	assert.Equal(t, ThemeDark, reopened.Theme())
}

func TestThemeDefaultsToLight(t *testing.T) {
	store, err := NewStore(tempSessionPath(t), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, store.Theme())
	assert.Error(t, store.SetTheme("sepia"))
}

func TestCorruptSessionFileStartsFresh(t *testing.T) {
	path := tempSessionPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := NewStore(path, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, store.Current())
	assert.Equal(t, ThemeLight, store.Theme())
}

func TestPasswordNeverPersisted(t *testing.T) {
	path := tempSessionPath(t)
	store, err := NewStore(path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, store.Login(Principal{ID: 2, Email: "alice@example.com", Token: "tok"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password")
}

func TestRouteFor(t *testing.T) {
	assert.Equal(t, DestinationLogin, RouteFor(nil))
	assert.Equal(t, DestinationAdmin, RouteFor(&Principal{Role: "ADMIN"}))
	assert.Equal(t, DestinationDashboard, RouteFor(&Principal{Role: "USER"}))
	assert.Equal(t, DestinationDashboard, RouteFor(&Principal{}))
}
