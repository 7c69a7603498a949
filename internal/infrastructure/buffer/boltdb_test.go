package buffer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/focus/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "buffer.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func taskWrite(t *testing.T, op Operation, id string) Write {
	t.Helper()
	w, err := TaskWrite(op, &domain.Task{ID: id, UserID: "u1", Text: id, Quadrant: domain.QuadrantDoFirst})
	require.NoError(t, err)
	return w
}

func TestStore_FIFOOrder(t *testing.T) {
	store := openTestStore(t)

	for _, op := range []Operation{OperationCreate, OperationUpdate, OperationDelete} {
		_, err := store.Append(taskWrite(t, op, "t1"))
		require.NoError(t, err)
	}

	writes, err := store.Peek(10)
	require.NoError(t, err)
	require.Len(t, writes, 3)
	assert.Equal(t, []Operation{OperationCreate, OperationUpdate, OperationDelete},
		[]Operation{writes[0].Operation, writes[1].Operation, writes[2].Operation})
	assert.Less(t, writes[0].Seq, writes[1].Seq)

	task, err := writes[0].Task()
	require.NoError(t, err)
	assert.Equal(t, "t1", task.ID)
	_, err = writes[0].Journal()
	assert.Error(t, err)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)
}

func TestStore_RetryKeepsPosition(t *testing.T) {
	store := openTestStore(t)
	first, err := store.Append(taskWrite(t, OperationCreate, "t1"))
	require.NoError(t, err)
	_, err = store.Append(taskWrite(t, OperationUpdate, "t1"))
	require.NoError(t, err)

	writes, err := store.Peek(1)
	require.NoError(t, err)
	require.Len(t, writes, 1)
	retried, err := store.Retry(writes[0])
	require.NoError(t, err)
	assert.Equal(t, 1, retried.Attempts)

	writes, err = store.Peek(10)
	require.NoError(t, err)
	require.Len(t, writes, 2)
	assert.Equal(t, first, writes[0].Seq)
	assert.Equal(t, 1, writes[0].Attempts)

	require.NoError(t, store.Ack(first))
	writes, err = store.Peek(10)
	require.NoError(t, err)
	require.Len(t, writes, 1)
	assert.Equal(t, OperationUpdate, writes[0].Operation)
}

func TestStore_Purge(t *testing.T) {
	store := openTestStore(t)
	stale := taskWrite(t, OperationCreate, "old")
	stale.QueuedAt = time.Now().Add(-48 * time.Hour)
	_, err := store.Append(stale)
	require.NoError(t, err)
	_, err = store.Append(taskWrite(t, OperationCreate, "fresh"))
	require.NoError(t, err)

	purged, err := store.Purge(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	writes, err := store.Peek(0)
	require.NoError(t, err)
	require.Len(t, writes, 1)
	task, err := writes[0].Task()
	require.NoError(t, err)
	assert.Equal(t, "fresh", task.ID)
}

func TestWrite_RejectsUnknownOperation(t *testing.T) {
	_, err := JournalWrite("archive", &domain.Journal{ID: "j1"})
	assert.Error(t, err)

	_, err = TaskWrite(OperationCreate, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}
