package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"empty path", "", ErrEmptyPath},
		{"null byte", "foo\x00bar", ErrNullBytes},
		{"plain relative path", "build/reports/report.xml", nil},
		{"dot segments cleaned", "./a/../b/report.xml", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePath(tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Clean(tt.path), got)
		})
	}
}

func TestValidatePathResolvesSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "report.xml")
	require.NoError(t, os.WriteFile(target, []byte("<report/>"), 0o600))

	link := filepath.Join(dir, "link.xml")
	require.NoError(t, os.Symlink(target, link))

	got, err := ValidatePath(link)
	require.NoError(t, err)

	wantTarget, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, wantTarget, got)
}

func TestValidatePathNonexistentKeepsCleaned(t *testing.T) {
	got, err := ValidatePath(filepath.Join(t.TempDir(), "missing", "report.xml"))
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}
