package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/wikihtml"
	"github.com/fwojciec/wikihtml/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRun(t *testing.T, svc *sqlite.CatalogService) *wikihtml.Run {
	t.Helper()
	run := &wikihtml.Run{
		Inputs:    "dump.xml",
		OutputDir: "/tmp/out",
		Format:    wikihtml.FormatHTML,
	}
	require.NoError(t, svc.CreateRun(context.Background(), run))
	return run
}

func TestCatalogService_CreateRun(t *testing.T) {
	t.Parallel()

	t.Run("creates run with generated ID and timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCatalogService(setupTestDB(t))

		run := createTestRun(t, svc)

		assert.NotEmpty(t, run.ID, "ID should be generated")
		assert.False(t, run.CreatedAt.IsZero(), "CreatedAt should be set")
	})

	t.Run("returns error for invalid run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCatalogService(setupTestDB(t))

		err := svc.CreateRun(context.Background(), &wikihtml.Run{})

		require.Error(t, err)
		assert.Equal(t, wikihtml.EINVALID, wikihtml.ErrorCode(err))
	})
}

func TestCatalogService_FindRuns(t *testing.T) {
	t.Parallel()

	t.Run("returns runs most recent first", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCatalogService(setupTestDB(t))
		first := createTestRun(t, svc)
		second := createTestRun(t, svc)

		runs, err := svc.FindRuns(context.Background(), wikihtml.RunFilter{})

		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, second.ID, runs[0].ID)
		assert.Equal(t, first.ID, runs[1].ID)
		assert.Equal(t, "/tmp/out", runs[0].OutputDir)
		assert.Equal(t, wikihtml.FormatHTML, runs[0].Format)
	})

	t.Run("filters by ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCatalogService(setupTestDB(t))
		createTestRun(t, svc)
		want := createTestRun(t, svc)

		runs, err := svc.FindRuns(context.Background(), wikihtml.RunFilter{ID: &want.ID})

		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, want.ID, runs[0].ID)
	})

	t.Run("applies limit", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCatalogService(setupTestDB(t))
		for range 3 {
			createTestRun(t, svc)
		}

		runs, err := svc.FindRuns(context.Background(), wikihtml.RunFilter{Limit: 2})

		require.NoError(t, err)
		assert.Len(t, runs, 2)
	})
}

func TestCatalogService_RecordPage(t *testing.T) {
	t.Parallel()

	t.Run("records page with generated ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCatalogService(setupTestDB(t))
		run := createTestRun(t, svc)
		ctx := context.Background()

		rec := &wikihtml.PageRecord{
			RunID:       run.ID,
			Title:       "Main Page",
			Namespace:   0,
			Class:       wikihtml.NamespaceContent,
			Status:      wikihtml.StatusRendered,
			FileName:    "Main_Page",
			ContentHash: "abc123",
			Bytes:       42,
			Sections:    3,
			Position:    7,
		}
		require.NoError(t, svc.RecordPage(ctx, rec))
		assert.NotEmpty(t, rec.ID)

		recs, err := svc.FindPages(ctx, wikihtml.PageFilter{RunID: &run.ID})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, *rec, *recs[0])
	})

	t.Run("returns not found for unknown run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCatalogService(setupTestDB(t))

		err := svc.RecordPage(context.Background(), &wikihtml.PageRecord{
			RunID:  "missing",
			Title:  "Main Page",
			Status: wikihtml.StatusRendered,
		})

		assert.Equal(t, wikihtml.ENOTFOUND, wikihtml.ErrorCode(err))
	})

	t.Run("returns error for invalid record", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCatalogService(setupTestDB(t))

		err := svc.RecordPage(context.Background(), &wikihtml.PageRecord{})

		assert.Equal(t, wikihtml.EINVALID, wikihtml.ErrorCode(err))
	})
}

func TestCatalogService_FindPages(t *testing.T) {
	t.Parallel()

	// Given a run with pages of several outcomes recorded out of order
	svc := sqlite.NewCatalogService(setupTestDB(t))
	run := createTestRun(t, svc)
	other := createTestRun(t, svc)
	ctx := context.Background()

	records := []*wikihtml.PageRecord{
		{RunID: run.ID, Title: "Talk:Foo", Namespace: 1, Class: wikihtml.NamespaceMeta, Status: wikihtml.StatusExcluded, Position: 2},
		{RunID: run.ID, Title: "Foo", Class: wikihtml.NamespaceContent, Status: wikihtml.StatusRendered, Position: 0},
		{RunID: run.ID, Title: "File:X.png", Namespace: 6, Class: wikihtml.NamespaceFile, Status: wikihtml.StatusExcluded, Position: 1},
		{RunID: other.ID, Title: "Foo", Class: wikihtml.NamespaceContent, Status: wikihtml.StatusFailed, Error: "boom"},
	}
	for _, rec := range records {
		require.NoError(t, svc.RecordPage(ctx, rec))
	}

	t.Run("returns pages of a run in dump order", func(t *testing.T) {
		t.Parallel()

		recs, err := svc.FindPages(ctx, wikihtml.PageFilter{RunID: &run.ID})

		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, "Foo", recs[0].Title)
		assert.Equal(t, "File:X.png", recs[1].Title)
		assert.Equal(t, wikihtml.NamespaceFile, recs[1].Class)
		assert.Equal(t, "Talk:Foo", recs[2].Title)
	})

	t.Run("filters by status", func(t *testing.T) {
		t.Parallel()

		status := wikihtml.StatusExcluded
		recs, err := svc.FindPages(ctx, wikihtml.PageFilter{RunID: &run.ID, Status: &status})

		require.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("filters by title across runs", func(t *testing.T) {
		t.Parallel()

		title := "Foo"
		recs, err := svc.FindPages(ctx, wikihtml.PageFilter{Title: &title})

		require.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		recs, err := svc.FindPages(ctx, wikihtml.PageFilter{RunID: &run.ID, Limit: 1, Offset: 1})

		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "File:X.png", recs[0].Title)
	})
}
