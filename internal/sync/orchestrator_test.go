package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/streak/internal/kv"
	"github.com/runnerr0/streak/internal/store"
)

func testOrchestrator(t *testing.T, backend *fakeBackend) (*Orchestrator, *store.Store) {
	t.Helper()
	st := store.New(kv.NewMemory())
	o := NewOrchestrator(testClient(t, backend), st, nil)
	st.SetNotifier(o)
	t.Cleanup(o.Close)
	return o, st
}

func TestOrchestrator_NoUploadWhileSyncDisabled(t *testing.T) {
	backend := newFakeBackend()
	o, st := testOrchestrator(t, backend)
	_ = o

	_, err := st.Add(store.Entry{Duration: 30, Intensity: 2})
	require.NoError(t, err)

	// Give a would-be upload time to happen.
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, backend.uploadCount())
}

func TestOrchestrator_EnableGeneratesKeyAndUploads(t *testing.T) {
	backend := newFakeBackend()
	o, st := testOrchestrator(t, backend)

	_, err := st.Add(store.Entry{Duration: 45, Intensity: 4.2})
	require.NoError(t, err)

	key, err := o.Enable()
	require.NoError(t, err)
	require.NotEmpty(t, key)

	cfg := st.Config()
	assert.True(t, cfg.CloudSync)
	assert.Equal(t, key, cfg.SyncKey, "generated key must be persisted")

	// Enabling pushes the full local state in the background.
	require.Eventually(t, func() bool {
		return backend.uploadCount() >= 1
	}, 2*time.Second, 10*time.Millisecond)

	backend.mu.Lock()
	rec, ok := backend.records[key]
	backend.mu.Unlock()
	require.True(t, ok)
	assert.Len(t, rec.Logs, 1)
	assert.Equal(t, 1, rec.Config.CurrentCount)
}

func TestOrchestrator_KeyNeverRegenerated(t *testing.T) {
	backend := newFakeBackend()
	o, st := testOrchestrator(t, backend)

	first, err := o.Enable()
	require.NoError(t, err)

	require.NoError(t, o.Disable())
	assert.False(t, st.Config().CloudSync)
	assert.Equal(t, first, st.Config().SyncKey, "key survives disable")

	again, err := o.Enable()
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestOrchestrator_MutationsUploadWhenEnabled(t *testing.T) {
	backend := newFakeBackend()
	o, st := testOrchestrator(t, backend)

	key, err := o.Enable()
	require.NoError(t, err)

	e, err := st.Add(store.Entry{Duration: 30, Intensity: 3})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		rec, ok := backend.records[key]
		return ok && len(rec.Logs) == 1 && rec.Logs[0].ID == e.ID
	}, 2*time.Second, 10*time.Millisecond)
}

func TestOrchestrator_PushNowRequiresKey(t *testing.T) {
	backend := newFakeBackend()
	o, _ := testOrchestrator(t, backend)

	err := o.PushNow(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sync key")
}

func TestOrchestrator_Restore(t *testing.T) {
	backend := newFakeBackend()

	// Seed the remote with another device's backup.
	seed := testClient(t, backend)
	remoteLogs := []store.Entry{
		{ID: "r-1", Timestamp: time.Now().UnixMilli(), Date: "2026-08-29", Title: "from other device", Duration: 50, Intensity: 3.9},
	}
	require.NoError(t, seed.Upload(context.Background(), "shared-key", remoteLogs,
		store.Config{YearlyGoal: 250, CurrentCount: 1}))

	o, st := testOrchestrator(t, backend)
	_, err := st.Add(store.Entry{Duration: 10, Intensity: 1, Title: "local, to be replaced"})
	require.NoError(t, err)

	b, err := o.Restore(context.Background(), "shared-key")
	require.NoError(t, err)
	assert.Len(t, b.Logs, 1)

	all := st.All()
	require.Len(t, all, 1)
	assert.Equal(t, "r-1", all[0].ID)

	cfg := st.Config()
	assert.Equal(t, 250, cfg.YearlyGoal)
	assert.Equal(t, "shared-key", cfg.SyncKey)
	assert.True(t, cfg.CloudSync)
	assert.Equal(t, 1, cfg.CurrentCount)
}

func TestOrchestrator_RestoreNotFoundLeavesLocalUntouched(t *testing.T) {
	backend := newFakeBackend()
	o, st := testOrchestrator(t, backend)

	local, err := st.Add(store.Entry{Duration: 30, Intensity: 2, Title: "keep me"})
	require.NoError(t, err)

	_, err = o.Restore(context.Background(), "unknown-key")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	all := st.All()
	require.Len(t, all, 1)
	assert.Equal(t, local.ID, all[0].ID)
	assert.Empty(t, st.Config().SyncKey)
	assert.False(t, st.Config().CloudSync)
}
