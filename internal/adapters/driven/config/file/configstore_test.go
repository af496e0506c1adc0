package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*ConfigStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestNewConfigStore_Success(t *testing.T) {
	store, dir := newTestStore(t)

	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_HomeEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestDefaultDir_FallsBackToHome(t *testing.T) {
	t.Setenv(HomeEnv, "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	dir, err := DefaultDir()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".donate"), dir)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("ui.language", "nl"))
	require.NoError(t, store.Set("session.gap_minutes", 30))

	assert.Equal(t, "nl", store.GetString("ui.language"))
	assert.Equal(t, 30, store.GetInt("session.gap_minutes"))

	// Wrong types and missing keys fall back to zero values.
	assert.Equal(t, "", store.GetString("session.gap_minutes"))
	assert.Equal(t, 0, store.GetInt("ui.language"))
	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_DeletePersists(t *testing.T) {
	store, dir := newTestStore(t)
	require.NoError(t, store.Set("ui.language", "nl"))
	require.NoError(t, store.Set("session.gap_minutes", 30))

	require.NoError(t, store.Delete("ui.language"))
	require.NoError(t, store.Delete("ui.language"))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"session.gap_minutes"}, reloaded.Keys())
}

func TestConfigStore_PersistsAsNestedTables(t *testing.T) {
	store, dir := newTestStore(t)
	require.NoError(t, store.Set("extraction.window_start", "2020-01-01 00:00:00"))
	require.NoError(t, store.Set("session.gap_minutes", 45))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[extraction]")
	assert.Contains(t, string(data), "[session]")

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01 00:00:00", reloaded.GetString("extraction.window_start"))
	assert.Equal(t, 45, reloaded.GetInt("session.gap_minutes"))
	assert.Equal(t, []string{"extraction.window_start", "session.gap_minutes"}, reloaded.Keys())
}

func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := "[ui]\nlanguage = \"nl\"\n\n[storage]\ndata_dir = \"/tmp/donations\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, "nl", store.GetString("ui.language"))
	assert.Equal(t, "/tmp/donations", store.GetString("storage.data_dir"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("ui.language", "en"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_ConflictingKeysRollBack(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("ui", "plain"))

	err := store.Set("ui.language", "nl")

	require.Error(t, err)
	_, ok := store.Get("ui.language")
	assert.False(t, ok)
	assert.Equal(t, "plain", store.GetString("ui"))
}

func TestConfigStore_UnmarshallableValueRollsBack(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("ui.language", "en"))

	err := store.Set("ui.language", make(chan int))

	require.Error(t, err)
	assert.Equal(t, "en", store.GetString("ui.language"))
}

func TestConfigStore_FailedWriteKeepsExistingFile(t *testing.T) {
	store, dir := newTestStore(t)
	require.NoError(t, store.Set("ui.language", "nl"))

	require.NoError(t, os.Chmod(dir, 0500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0700) })
	if f, err := os.CreateTemp(dir, "probe"); err == nil {
		// Running as root ignores directory permissions.
		f.Close()
		os.Remove(f.Name())
		t.Skip("directory permissions are not enforced")
	}

	assert.Error(t, store.Set("ui.language", "en"))
	require.NoError(t, os.Chmod(dir, 0700))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "nl", reloaded.GetString("ui.language"))
}

func TestConfigStore_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(dir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, _ := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "session.key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 10)
}

func TestNest(t *testing.T) {
	tree, err := nest(map[string]any{"a.b.c": 1, "a.d": "x", "e": true})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": map[string]any{"b": map[string]any{"c": 1}, "d": "x"},
		"e": true,
	}, tree)
	assert.Equal(t, map[string]any{"a.b.c": 1, "a.d": "x", "e": true}, flatten(tree, ""))
}
