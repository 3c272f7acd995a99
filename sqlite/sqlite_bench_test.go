package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/wikihtml"
	"github.com/fwojciec/wikihtml/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkRecordPage measures page record inserts against a file database,
// the workload of cataloguing a large dump.
func BenchmarkRecordPage(b *testing.B) {
	dbPath := filepath.Join(b.TempDir(), "bench.db")

	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())
	defer func() {
		db.Close()
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	ctx := context.Background()
	svc := sqlite.NewCatalogService(db)
	run := &wikihtml.Run{OutputDir: "/tmp/out", Format: wikihtml.FormatHTML}
	require.NoError(b, svc.CreateRun(ctx, run))

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rec := &wikihtml.PageRecord{
			RunID:       run.ID,
			Title:       fmt.Sprintf("Page %d", i),
			Class:       wikihtml.NamespaceContent,
			Status:      wikihtml.StatusRendered,
			FileName:    fmt.Sprintf("Page_%d", i),
			ContentHash: fmt.Sprintf("%016x", i),
			Position:    i,
		}
		if err := svc.RecordPage(ctx, rec); err != nil {
			b.Fatal(err)
		}
	}
}
