package mock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/wikihtml"
	"github.com/fwojciec/wikihtml/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_RecordPage(t *testing.T) {
	t.Parallel()

	t.Run("delegates to RecordPageFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *wikihtml.PageRecord
		s := &mock.CatalogService{
			RecordPageFn: func(_ context.Context, rec *wikihtml.PageRecord) error {
				calledWith = rec
				return nil
			},
		}

		rec := &wikihtml.PageRecord{RunID: "run-1", Title: "Main Page"}
		err := s.RecordPage(context.Background(), rec)

		require.NoError(t, err)
		assert.Same(t, rec, calledWith)
	})

	t.Run("returns error from RecordPageFn", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("database error")
		s := &mock.CatalogService{
			RecordPageFn: func(_ context.Context, _ *wikihtml.PageRecord) error {
				return expectedErr
			},
		}

		err := s.RecordPage(context.Background(), &wikihtml.PageRecord{})

		assert.ErrorIs(t, err, expectedErr)
	})
}
