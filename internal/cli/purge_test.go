package cli

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurge_WithoutAllFlag_Errors(t *testing.T) {
	err := RunWithArgs("test", []string{"purge"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "purge requires --all flag for safety")
}

func TestPurge_WithAllAndForce_Succeeds(t *testing.T) {
	store := openTestStore(t)
	seedSnapshot(t, store, testNow.Add(-time.Hour))

	d, out := testDeps(t, store)
	cmd := &PurgeCommand{All: true, Force: true, globals: &GlobalFlags{}, deps: d}

	require.NoError(t, cmd.Execute(nil))
	assert.Contains(t, out.String(), "Purged all snapshots")
	assert.Equal(t, int64(0), snapshotCount(t, store))
}

func TestPurge_TypedConfirmation(t *testing.T) {
	store := openTestStore(t)
	seedSnapshot(t, store, testNow.Add(-time.Hour))

	d, out := testDeps(t, store)
	d.stdin = strings.NewReader("PURGE\n")
	cmd := &PurgeCommand{All: true, globals: &GlobalFlags{}, deps: d}

	require.NoError(t, cmd.Execute(nil))
	assert.Contains(t, out.String(), `Type "PURGE" to confirm`)
	assert.Equal(t, int64(0), snapshotCount(t, store))
}

func TestPurge_WrongConfirmationAborts(t *testing.T) {
	store := openTestStore(t)
	seedSnapshot(t, store, testNow.Add(-time.Hour))

	d, _ := testDeps(t, store)
	d.stdin = strings.NewReader("purge\n")
	cmd := &PurgeCommand{All: true, globals: &GlobalFlags{}, deps: d}

	err := cmd.Execute(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confirmation text did not match")
	assert.Equal(t, int64(1), snapshotCount(t, store))
}

func TestPurge_JSONOutput(t *testing.T) {
	store := openTestStore(t)
	d, out := testDeps(t, store)
	cmd := &PurgeCommand{All: true, Force: true, globals: &GlobalFlags{JSON: true}, deps: d}

	require.NoError(t, cmd.Execute(nil))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, true, got["purged"])
}
