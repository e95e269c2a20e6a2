package cli

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/runnerr0/streak/internal/kv"
	"github.com/runnerr0/streak/internal/store"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// testStore returns a store over in-memory storage.
func testStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(kv.NewMemory())
}

// seedEntry adds one entry and fails the test on error.
func seedEntry(t *testing.T, st *store.Store, e store.Entry) store.Entry {
	t.Helper()
	added, err := st.Add(e)
	require.NoError(t, err)
	return added
}
