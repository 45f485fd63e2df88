package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_Stdout(t *testing.T) {
	d, out := testDeps(t, nil)
	cmd := &ExportCommand{globals: &GlobalFlags{}, deps: d, Output: "-"}
	cmd.Input = writeFile(t, "svcs.txt", sampleSvcs)
	cmd.Members = writeFile(t, "members.txt", sampleMembers)

	require.NoError(t, cmd.Execute(nil))

	s := out.String()
	assert.Contains(t, s, `smf_service_state{fmri="svc:/network/ssh:default",state="online"} 1`)
	assert.Contains(t, s, `smf_service_contract_processes{fmri="svc:/network/ssh:default"} 2`)
	assert.Contains(t, s, `smf_service_contract_processes{fmri="svc:/application/nginx:default"} 0`)
	assert.NotContains(t, s, "rc2_d")
}

func TestExport_TextfileFromConfig(t *testing.T) {
	store := openTestStore(t)
	seedSnapshot(t, store, testNow.Add(-time.Hour))

	d, out := testDeps(t, store)
	path := filepath.Join(t.TempDir(), "textfile", "smf.prom")
	d.cfg.Export.Textfile = path

	cmd := &ExportCommand{globals: &GlobalFlags{JSON: true}, deps: d}
	require.NoError(t, cmd.Execute(nil))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, path, got["path"])
	assert.Equal(t, float64(5), got["services"])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "smf_snapshot_timestamp_seconds")
	assert.Contains(t, string(data), `smf_service_state{fmri="svc:/network/nfs/server:default",state="disabled"} 1`)
}
