package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saveRecorder struct {
	mu    sync.Mutex
	saves [][]byte
	err   error
}

func (r *saveRecorder) save(key string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.saves = append(r.saves, payload)
	return nil
}

func (r *saveRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saves)
}

func (r *saveRecorder) last() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.saves) == 0 {
		return nil
	}
	return r.saves[len(r.saves)-1]
}

func TestAutosaverBurstCollapsesToOneSave(t *testing.T) {
	rec := &saveRecorder{}
	saver := NewAutosaver(30*time.Millisecond, rec.save)

	for i := 0; i < 10; i++ {
		saver.Queue("user-1", []byte(fmt.Sprintf(`{"edit":%d}`, i)))
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	require.Equal(t, 1, rec.count())
	assert.Equal(t, []byte(`{"edit":9}`), rec.last())
}

func TestAutosaverSkipsUnchangedPayload(t *testing.T) {
	rec := &saveRecorder{}
	saver := NewAutosaver(10*time.Millisecond, rec.save)

	saver.Queue("user-1", []byte(`{"a":1}`))
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 1, rec.count())

	// identical payload after a successful save: nothing scheduled
	saver.Queue("user-1", []byte(`{"a":1}`))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, rec.count())
}

func TestAutosaverSkipsEmptyPayload(t *testing.T) {
	rec := &saveRecorder{}
	saver := NewAutosaver(10*time.Millisecond, rec.save)

	saver.Queue("user-1", nil)
	saver.Queue("user-1", []byte{})
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, rec.count())
}

func TestAutosaverIndependentKeys(t *testing.T) {
	rec := &saveRecorder{}
	saver := NewAutosaver(10*time.Millisecond, rec.save)

	saver.Queue("user-1", []byte(`{"a":1}`))
	saver.Queue("user-2", []byte(`{"b":2}`))
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 2, rec.count())
}

func TestAutosaverFlushRunsPendingSave(t *testing.T) {
	rec := &saveRecorder{}
	saver := NewAutosaver(time.Hour, rec.save)

	saver.Queue("user-1", []byte(`{"a":1}`))
	require.Equal(t, 0, rec.count())

	saver.Flush()
	require.Equal(t, 1, rec.count())
	assert.Equal(t, []byte(`{"a":1}`), rec.last())

	// flushing again is a no-op
	saver.Flush()
	assert.Equal(t, 1, rec.count())
}

func TestAutosaverFlushKey(t *testing.T) {
	rec := &saveRecorder{}
	saver := NewAutosaver(time.Hour, rec.save)

	saver.Queue("user-1", []byte(`{"a":1}`))
	saver.Queue("user-2", []byte(`{"b":2}`))

	saver.FlushKey("user-1")
	require.Equal(t, 1, rec.count())
	assert.Equal(t, []byte(`{"a":1}`), rec.last())
}

func TestAutosaverRetainsPayloadAfterFailedSave(t *testing.T) {
	rec := &saveRecorder{err: fmt.Errorf("db down")}
	saver := NewAutosaver(10*time.Millisecond, rec.save)

	saver.Queue("user-1", []byte(`{"a":1}`))
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 0, rec.count())

	// recovery: the next flush retries the kept payload
	rec.mu.Lock()
	rec.err = nil
	rec.mu.Unlock()

	saver.Flush()
	require.Equal(t, 1, rec.count())
	assert.Equal(t, []byte(`{"a":1}`), rec.last())
}
