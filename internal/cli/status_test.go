package cli

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/streak/internal/store"
)

func TestStatusHumanOutput(t *testing.T) {
	st := testStore(t)
	seedEntry(t, st, store.Entry{Title: "Morning run", Duration: 45, Intensity: 3.0})

	cmd := &StatusCommand{globals: &GlobalFlags{}, version: "1.0.0-test"}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(st, time.Now()))
	})

	assert.Contains(t, output, "Streak Status")
	assert.Contains(t, output, "1.0.0-test")
	assert.Contains(t, output, "Entries:       1")
	assert.Contains(t, output, "Morning run")
	assert.Contains(t, output, "Cloud sync:    disabled")
	assert.Contains(t, output, "Sync key:      not set")
}

func TestStatusJSONOutput(t *testing.T) {
	st := testStore(t)
	seedEntry(t, st, store.Entry{Title: "Run", Duration: 30, Intensity: 3.0})
	require.NoError(t, st.SetSync(true, "some-key"))

	cmd := &StatusCommand{globals: &GlobalFlags{JSON: true}, version: "1.0.0-test"}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(st, time.Now()))
	})

	var out statusJSON
	require.NoError(t, json.Unmarshal([]byte(output), &out))
	assert.Equal(t, "1.0.0-test", out.Version)
	assert.Equal(t, 1, out.TotalEntries)
	assert.Equal(t, 1, out.CurrentCount)
	assert.Equal(t, store.DefaultYearlyGoal, out.YearlyGoal)
	assert.True(t, out.CloudSync)
	assert.True(t, out.SyncKeySet)
}

func TestGoalSetChangesGoal(t *testing.T) {
	st := testStore(t)
	cmd := &GoalCommand{Set: 200, globals: &GlobalFlags{}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(st))
	})

	assert.Equal(t, 200, st.Config().YearlyGoal)
	assert.Contains(t, output, "Goal set to 200")
}

func TestGoalResetProgress(t *testing.T) {
	st := testStore(t)
	seedEntry(t, st, store.Entry{Title: "Run", Duration: 30, Intensity: 3.0})
	require.Equal(t, 1, st.Config().CurrentCount)

	cmd := &GoalCommand{ResetProgress: true, globals: &GlobalFlags{}}
	captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(st))
	})

	assert.Equal(t, 0, st.Config().CurrentCount)
	// The log itself is untouched.
	assert.Len(t, st.All(), 1)
}

func TestGoalShowCurrent(t *testing.T) {
	st := testStore(t)
	cmd := &GoalCommand{globals: &GlobalFlags{}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(st))
	})

	assert.Contains(t, output, "Yearly goal: 0/150")
}

func TestPurgeClearsEverything(t *testing.T) {
	st := testStore(t)
	seedEntry(t, st, store.Entry{Title: "Run", Duration: 30, Intensity: 3.0})
	seedEntry(t, st, store.Entry{Title: "Swim", Duration: 20, Intensity: 2.0})

	cmd := &PurgeCommand{All: true, Force: true, globals: &GlobalFlags{}}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(st))
	})

	assert.Empty(t, st.All())
	assert.Equal(t, 0, st.Config().CurrentCount)
	assert.Contains(t, output, "Purged all entries")
}

func TestPurgeKeepsGoalAndKey(t *testing.T) {
	st := testStore(t)
	require.NoError(t, st.SetYearlyGoal(300))
	require.NoError(t, st.SetSync(true, "keep-me"))
	seedEntry(t, st, store.Entry{Title: "Run", Duration: 30, Intensity: 3.0})

	cmd := &PurgeCommand{All: true, Force: true, globals: &GlobalFlags{}}
	captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(st))
	})

	cfg := st.Config()
	assert.Equal(t, 300, cfg.YearlyGoal)
	assert.Equal(t, "keep-me", cfg.SyncKey)
	assert.True(t, cfg.CloudSync)
}
