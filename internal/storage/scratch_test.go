package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"data.zip", "data.zip"},
		{"My Data.zip", "My_Data.zip"},
		{"../../etc/passwd", "etc_passwd"},
		{"données.csv", "donnees.csv"},
		{"weird$name!.zip", "weirdname.zip"},
		{"._hidden_", "hidden"},
		{"///", "upload"},
		{"", "upload"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeFilename(tt.in))
		})
	}
}

func TestScope_SaveAndClose(t *testing.T) {
	base := t.TempDir()
	scratch, err := NewScratch(base)
	require.NoError(t, err)

	scope, err := scratch.Open()
	require.NoError(t, err)
	assert.Equal(t, base, filepath.Dir(scope.Dir()))

	path, err := scope.Save("../evil name.zip", []byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(scope.Dir(), "evil_name.zip"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	dir, err := scope.Mkdir("extracted")
	require.NoError(t, err)
	assert.DirExists(t, dir)

	require.NoError(t, scope.Close())
	assert.NoDirExists(t, scope.Dir())

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestScratch_ScopesAreIsolated(t *testing.T) {
	scratch, err := NewScratch(t.TempDir())
	require.NoError(t, err)

	a, err := scratch.Open()
	require.NoError(t, err)
	defer a.Close()
	b, err := scratch.Open()
	require.NoError(t, err)
	defer b.Close()

	assert.NotEqual(t, a.Dir(), b.Dir())
}
