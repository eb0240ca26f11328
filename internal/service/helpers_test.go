package service

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"testing"

	"github.com/alexanderramin/throughput/internal/domain"
	"github.com/alexanderramin/throughput/internal/importer"
	"github.com/alexanderramin/throughput/internal/testutil"
	"github.com/stretchr/testify/require"
)

func parseBatch(t *testing.T, csv string) *domain.Batch {
	t.Helper()
	batch, err := importer.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	return batch
}

func newTestImportService(t *testing.T, observers ...UseCaseObserver) (ImportService, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewImportService(testutil.NewTestUoW(database), nil, observers...), database
}

// recordingObserver keeps every event it sees.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last(t *testing.T) UseCaseEvent {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.events)
	return r.events[len(r.events)-1]
}
