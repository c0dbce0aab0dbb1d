package dbmetrics

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	operation string
	err       error
}

type fakeRecorder struct {
	mu           sync.Mutex
	observations []observation
	statsCalls   int
}

func (f *fakeRecorder) ObserveDBQuery(operation string, _ float64, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observations = append(f.observations, observation{operation: operation, err: err})
}

func (f *fakeRecorder) SetDBConnections(_, _, _ int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statsCalls++
}

func (f *fakeRecorder) snapshot() ([]observation, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]observation(nil), f.observations...), f.statsCalls
}

// unreachableDB пул без сервера: sql.Open не подключается, запросы падают на dial
func unreachableDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", "host=127.0.0.1 port=1 user=x dbname=x sslmode=disable connect_timeout=1")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_RecordsEveryOperation(t *testing.T) {
	rec := &fakeRecorder{}
	db := Wrap(unreachableDB(t), rec)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, execErr := db.ExecContext(ctx, "SELECT 1")
	_, queryErr := db.QueryContext(ctx, "SELECT 1")
	_ = db.QueryRowContext(ctx, "SELECT 1")

	require.Error(t, execErr)
	require.Error(t, queryErr)

	obs, _ := rec.snapshot()
	require.Len(t, obs, 3)
	assert.Equal(t, "exec", obs[0].operation)
	assert.Error(t, obs[0].err)
	assert.Equal(t, "query", obs[1].operation)
	assert.Error(t, obs[1].err)
	assert.Equal(t, "query_row", obs[2].operation)
	assert.NoError(t, obs[2].err)
}

func TestWrapWithDefault_ReportsPoolStatsUntilStopped(t *testing.T) {
	rec := &fakeRecorder{}
	stop := make(chan struct{})
	WrapWithDefault(unreachableDB(t), rec, stop)

	// Первый снимок пула пишется сразу после старта
	require.Eventually(t, func() bool {
		_, calls := rec.snapshot()
		return calls >= 1
	}, time.Second, 10*time.Millisecond)

	close(stop)
}

func TestDB_SatisfiesExecutor(t *testing.T) {
	var _ DBExecutor = Wrap(unreachableDB(t), &fakeRecorder{})
	var _ DBExecutor = unreachableDB(t)
}
