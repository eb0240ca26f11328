package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/throughput/internal/db"
	"github.com/alexanderramin/throughput/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// TestConcurrentAccess_ListDuringImports runs transactional project inserts
// while readers list projects. Readers only ever see whole imports.
func TestConcurrentAccess_ListDuringImports(t *testing.T) {
	database := newConcurrentTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database, nil)
	ctx := context.Background()

	const imports = 10
	var wg sync.WaitGroup
	errs := make(chan error, imports+imports)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < imports; i++ {
			err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				store := NewSQLiteStore(tx)
				pid, err := store.Projects.Insert(ctx, &domain.Project{Name: fmt.Sprintf("P-%d", i)})
				if err != nil {
					return err
				}
				f := &domain.Feature{Name: "F", OrgProductivity: 1, ManDayHours: 8}
				f.Stories = []domain.Story{domain.NewStory("S", 8, 8, 1)}
				_, err = store.Features.Insert(ctx, pid, f, f.Totals())
				return err
			})
			if err != nil {
				errs <- err
			}
		}
	}()

	for r := 0; r < imports; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			list, err := NewSQLiteProjectRepo(database).List(ctx)
			if err != nil {
				errs <- err
				return
			}
			for _, p := range list {
				if p.FeatureCount != 1 {
					errs <- fmt.Errorf("project %s visible with %d features", p.Name, p.FeatureCount)
				}
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	list, err := NewSQLiteProjectRepo(database).List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, imports)
}
