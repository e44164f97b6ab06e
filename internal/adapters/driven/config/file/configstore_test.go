package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_EmptyDirectory(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("api.url")
	assert.False(t, ok)
	assert.Equal(t, "", store.GetString("api.url"))
	assert.Equal(t, 0, store.GetInt("api.timeout"))
	assert.False(t, store.GetBool("verbose"))
}

func TestConfigStore_SetPersists(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("api.url", "https://survey.example.org"))
	require.NoError(t, store.Set("api.timeout", 45))

	// A fresh store over the same directory reads the persisted values.
	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://survey.example.org", reopened.GetString("api.url"))
	assert.Equal(t, 45, reopened.GetInt("api.timeout"))
}

func TestConfigStore_Load_FlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[api]\nurl = \"https://survey.example.org\"\ntimeout = 30\n\n[sync]\nauto = true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://survey.example.org", store.GetString("api.url"))
	assert.Equal(t, 30, store.GetInt("api.timeout"))
	assert.True(t, store.GetBool("sync.auto"))
}

func TestConfigStore_TypeMismatches(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("key", "string-value"))

	assert.Equal(t, 0, store.GetInt("key"))
	assert.False(t, store.GetBool("key"))
	assert.Equal(t, "string-value", store.GetString("key"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("api.url", "https://survey.example.org"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Watch_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("api.url", "https://old.example.org"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, store.Watch(ctx))

	content := "[api]\nurl = \"https://new.example.org\"\n"
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0600))

	assert.Eventually(t, func() bool {
		return store.GetString("api.url") == "https://new.example.org"
	}, 2*time.Second, 20*time.Millisecond)
}
