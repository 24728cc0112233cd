package settings

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnharrison/jsonview/internal/logging"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name     string
		old, new Settings
		want     Changes
	}{
		{
			name: "no change",
			old:  Defaults(),
			new:  Defaults(),
			want: Changes{},
		},
		{
			name: "theme only",
			old:  Defaults(),
			new:  Settings{Theme: "light", FontSize: 16},
			want: Changes{KeyTheme: {Old: "dark", New: "light"}},
		},
		{
			name: "both",
			old:  Defaults(),
			new:  Settings{Theme: "light", FontSize: 20},
			want: Changes{
				KeyTheme:    {Old: "dark", New: "light"},
				KeyFontSize: {Old: 16, New: 20},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Diff(tt.old, tt.new))
		})
	}
}

func TestApplyChanges(t *testing.T) {
	s := Defaults().Apply(Changes{KeyFontSize: {Old: 16, New: 18}})
	assert.Equal(t, Settings{Theme: "dark", FontSize: 18}, s)

	s = s.Apply(Changes{KeyTheme: {Old: "dark", New: "light"}})
	assert.Equal(t, Settings{Theme: "light", FontSize: 18}, s)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Defaults().Validate())
	assert.ErrorIs(t, Settings{Theme: "sepia", FontSize: 16}.Validate(), ErrInvalid)
	assert.ErrorIs(t, Settings{Theme: "light", FontSize: 2}.Validate(), ErrInvalid)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(Settings{Theme: "light"})

	got, err := store.Get(ctx, Defaults())
	require.NoError(t, err)
	assert.Equal(t, Settings{Theme: "light", FontSize: 16}, got)

	var seen []Changes
	cancel := store.Subscribe(func(c Changes) { seen = append(seen, c) })

	require.NoError(t, store.Set(ctx, Settings{Theme: "light", FontSize: 16}))
	require.Len(t, seen, 1)
	assert.Equal(t, Changes{KeyFontSize: {Old: 0, New: 16}}, seen[0])

	require.NoError(t, store.Set(ctx, Settings{Theme: "light", FontSize: 16}))
	assert.Len(t, seen, 1, "unchanged values are not reported")

	cancel()
	require.NoError(t, store.Set(ctx, Settings{Theme: "dark", FontSize: 16}))
	assert.Len(t, seen, 1)
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	store := NewMemoryStore(Settings{Theme: "light", FontSize: 12})
	store.Err = errors.New("storage unavailable")

	assert.Equal(t, Defaults(), Load(context.Background(), store))
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "jsonview", FileName)
	store := NewFileStore(path)

	got, err := store.Get(ctx, Defaults())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got, "missing file yields defaults")

	var seen []Changes
	store.Subscribe(func(c Changes) { seen = append(seen, c) })

	require.NoError(t, store.Set(ctx, Settings{Theme: "light", FontSize: 20}))
	got, err = store.Get(ctx, Defaults())
	require.NoError(t, err)
	assert.Equal(t, Settings{Theme: "light", FontSize: 20}, got)
	require.Len(t, seen, 1)
	assert.Contains(t, seen[0], KeyTheme)
	assert.Contains(t, seen[0], KeyFontSize)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "theme: light")
}

func TestFileStoreFirstSetDiffsAgainstDefaults(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), FileName))

	var seen []Changes
	store.Subscribe(func(c Changes) { seen = append(seen, c) })

	require.NoError(t, store.Set(ctx, Settings{Theme: "light", FontSize: DefaultFontSize}))
	require.Len(t, seen, 1)
	assert.Equal(t, Changes{KeyTheme: {Old: DefaultTheme, New: "light"}}, seen[0])
}

func TestFileStoreReloadDiffsAgainstDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	store := NewFileStore(path)

	var seen []Changes
	store.Subscribe(func(c Changes) { seen = append(seen, c) })

	require.NoError(t, os.WriteFile(path, []byte("theme: light\n"), 0o644))
	store.reload(logging.NewWriter(io.Discard, "error"))

	require.Len(t, seen, 1)
	assert.Equal(t, Changes{KeyTheme: {Old: DefaultTheme, New: "light"}}, seen[0])
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("theme: [unterminated"), 0o644))

	store := NewFileStore(path)
	got, err := store.Get(context.Background(), Defaults())
	require.Error(t, err)
	assert.Equal(t, Defaults(), got)
	assert.Equal(t, Defaults(), Load(context.Background(), store))
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{EnvTheme: "light", EnvFontSize: "22"}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	s, err := applyEnv(Defaults(), lookup)
	require.NoError(t, err)
	assert.Equal(t, Settings{Theme: "light", FontSize: 22}, s)

	env[EnvFontSize] = "huge"
	_, err = applyEnv(Defaults(), lookup)
	assert.ErrorIs(t, err, ErrInvalid)
}
