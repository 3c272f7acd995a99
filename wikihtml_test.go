package wikihtml_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/wikihtml"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := wikihtml.Errorf(wikihtml.ECONFLICT, "pages %q and %q share a file name", "A b", "A_b")

	assert.Equal(t, wikihtml.ECONFLICT, wikihtml.ErrorCode(err))
	assert.Equal(t, `pages "A b" and "A_b" share a file name`, wikihtml.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("render: %w", wikihtml.Errorf(wikihtml.EINVALID, "bad span"))

	assert.Equal(t, wikihtml.EINVALID, wikihtml.ErrorCode(err))
	assert.Equal(t, "bad span", wikihtml.ErrorMessage(err))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk full")

	assert.Equal(t, wikihtml.EINTERNAL, wikihtml.ErrorCode(err))
	assert.Equal(t, "Internal error.", wikihtml.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, wikihtml.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, wikihtml.ErrorMessage(nil))
}
