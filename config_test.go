package wikihtml_test

import (
	"testing"

	"github.com/fwojciec/wikihtml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("empty config is valid", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, (&wikihtml.Config{}).Validate())
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		t.Parallel()

		err := (&wikihtml.Config{Format: "pdf"}).Validate()

		assert.Equal(t, wikihtml.EINVALID, wikihtml.ErrorCode(err))
	})

	t.Run("rejects negative concurrency", func(t *testing.T) {
		t.Parallel()

		err := (&wikihtml.Config{Concurrency: -1}).Validate()

		assert.Equal(t, wikihtml.EINVALID, wikihtml.ErrorCode(err))
	})

	t.Run("rejects unknown namespace class", func(t *testing.T) {
		t.Parallel()

		err := (&wikihtml.Config{Namespaces: map[int]string{4: "project"}}).Validate()

		require.Error(t, err)
		assert.Equal(t, wikihtml.EINVALID, wikihtml.ErrorCode(err))
		assert.Contains(t, wikihtml.ErrorMessage(err), "namespace 4")
	})
}

func TestConfig_NamespaceOverrides(t *testing.T) {
	t.Parallel()

	cfg := &wikihtml.Config{Namespaces: map[int]string{4: "meta", 14: "content"}}

	got, err := cfg.NamespaceOverrides()

	require.NoError(t, err)
	assert.Equal(t, map[int]wikihtml.NamespaceClass{
		4:  wikihtml.NamespaceMeta,
		14: wikihtml.NamespaceContent,
	}, got)
}

func TestPageRecord_Validate(t *testing.T) {
	t.Parallel()

	valid := wikihtml.PageRecord{RunID: "run", Title: "Ship", Status: wikihtml.StatusRendered}
	require.NoError(t, valid.Validate())

	noRun := valid
	noRun.RunID = ""
	assert.Equal(t, wikihtml.EINVALID, wikihtml.ErrorCode(noRun.Validate()))

	badStatus := valid
	badStatus.Status = "lost"
	assert.Equal(t, wikihtml.EINVALID, wikihtml.ErrorCode(badStatus.Validate()))
}

func TestRun_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, (&wikihtml.Run{OutputDir: "/tmp/out"}).Validate())
	assert.Equal(t, wikihtml.EINVALID, wikihtml.ErrorCode((&wikihtml.Run{}).Validate()))
}
