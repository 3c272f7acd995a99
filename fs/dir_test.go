package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/wikihtml"
	"github.com/fwojciec/wikihtml/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{title: "Main Page", want: "Main_Page"},
		{title: "Foo/Bar", want: "Foo_Bar"},
		{title: "snake_case_42", want: "snake_case_42"},
		{title: "Café", want: "Caf_"},
		{title: "★", want: "_munged"},
		{title: "_", want: "_munged"},
		{title: "index", want: "indexmunged"},
		{title: "Index", want: "Index"},
		{title: "", want: "munged"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, fs.SanitizeName(tt.title))
		})
	}
}

func TestAssignFileNames(t *testing.T) {
	t.Parallel()

	t.Run("assigns names in order", func(t *testing.T) {
		t.Parallel()

		names, err := fs.AssignFileNames([]string{"Main Page", "Ships"})

		require.NoError(t, err)
		assert.Equal(t, []string{"Main_Page", "Ships"}, names)
	})

	t.Run("rejects titles mapping to one name", func(t *testing.T) {
		t.Parallel()

		// Given two titles that differ only in punctuation
		titles := []string{"Foo/Bar", "Foo Bar"}

		// When names are assigned
		_, err := fs.AssignFileNames(titles)

		// Then the run is rejected as a conflict
		require.Error(t, err)
		assert.Equal(t, wikihtml.ECONFLICT, wikihtml.ErrorCode(err))
		assert.Contains(t, wikihtml.ErrorMessage(err), "Foo_Bar")
	})
}

func TestConfirmDir(t *testing.T) {
	t.Parallel()

	t.Run("creates a missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a", "b")

		got, err := fs.ConfirmDir(path)

		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("accepts an existing directory", func(t *testing.T) {
		t.Parallel()

		path := t.TempDir()

		got, err := fs.ConfirmDir(path)

		require.NoError(t, err)
		assert.Equal(t, path, got)
	})

	t.Run("rejects a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

		_, err := fs.ConfirmDir(path)

		assert.Equal(t, wikihtml.EINVALID, wikihtml.ErrorCode(err))
	})
}

func TestSiteDirName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "wiki", fs.SiteDirName(""))
	assert.Equal(t, "Star_Wars_Wiki", fs.SiteDirName("Star Wars Wiki"))
}
