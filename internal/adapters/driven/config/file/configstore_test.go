package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfigStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Path(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "contas")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not toml {{[["), 0600))

	store, err := NewConfigStore(dir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Getters(t *testing.T) {
	store := newTestConfigStore(t)
	store.data = map[string]any{
		"google.client_id":      "abc.apps.googleusercontent.com",
		"gmail.max_results":     int64(50),
		"extract.max_amount":    int64(5000),
		"extract.ratio":         0.5,
		"import.reminders":      true,
		"google.calendar_id":    42,
		"extract.due_soon_days": "three",
	}

	assert.Equal(t, "abc.apps.googleusercontent.com", store.GetString("google.client_id"))
	assert.Equal(t, "", store.GetString("google.calendar_id"))
	assert.Equal(t, "", store.GetString("missing"))

	assert.Equal(t, 50, store.GetInt("gmail.max_results"))
	assert.Equal(t, 0, store.GetInt("extract.due_soon_days"))

	assert.InDelta(t, 5000.0, store.GetFloat("extract.max_amount"), 0)
	assert.InDelta(t, 0.5, store.GetFloat("extract.ratio"), 0)
	assert.InDelta(t, 0.0, store.GetFloat("google.client_id"), 0)

	assert.True(t, store.GetBool("import.reminders"))
	assert.False(t, store.GetBool("google.client_id"))
}

func TestConfigStore_PersistsNestedTables(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("google.client_id", "id-1"))
	require.NoError(t, store.Set("google.client_secret", "s3cret"))
	require.NoError(t, store.Set("extract.due_soon_days", 5))
	require.NoError(t, store.Set("data_dir", "/tmp/contas"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[google]")
	assert.Contains(t, string(raw), "[extract]")

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "id-1", reloaded.GetString("google.client_id"))
	assert.Equal(t, "s3cret", reloaded.GetString("google.client_secret"))
	assert.Equal(t, 5, reloaded.GetInt("extract.due_soon_days"))
	assert.Equal(t, "/tmp/contas", reloaded.GetString("data_dir"))
}

func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[user]
id = "alice"

[token]
refresh_margin = "10m"

[extract]
max_amount = 250000.0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, "alice", store.GetString("user.id"))
	assert.Equal(t, "10m", store.GetString("token.refresh_margin"))
	assert.InDelta(t, 250000.0, store.GetFloat("extract.max_amount"), 0)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newTestConfigStore(t)

	require.NoError(t, store.Set("google.client_secret", "x"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_SetUnmarshallable(t *testing.T) {
	store := newTestConfigStore(t)

	assert.Error(t, store.Set("channel", make(chan int)))
}

func TestConfigStore_SaveWriteError(t *testing.T) {
	store := newTestConfigStore(t)
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("k", "v"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newTestConfigStore(t)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("gmail.max_results", n)
			_ = store.GetInt("gmail.max_results")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("gmail.max_results")
	assert.True(t, ok)
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"a.b":   1,
		"a.c.d": "x",
		"e":     true,
		"e.f":   "dropped",
	})

	assert.Equal(t, map[string]any{
		"a": map[string]any{
			"b": 1,
			"c": map[string]any{"d": "x"},
		},
		"e": true,
	}, nested)
}

func TestFlattenMap(t *testing.T) {
	flat := flattenMap(map[string]any{
		"google": map[string]any{"client_id": "id"},
		"top":    1,
	}, "")

	assert.Equal(t, map[string]any{"google.client_id": "id", "top": 1}, flat)
}
