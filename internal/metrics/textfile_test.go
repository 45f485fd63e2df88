package metrics

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/smf/internal/svc"
)

var taken = time.Date(2023, time.October, 9, 12, 30, 0, 0, time.UTC)

func ctid(n int) *int { return &n }

func records() []svc.Record {
	return []svc.Record{
		{FMRI: "svc:/network/ssh:default", State: svc.StateOnline, STime: "Oct_08", ContractID: ctid(63), Members: []int{512, 601}},
		{FMRI: "svc:/network/nfs/server:default", State: svc.StateDisabled, STime: "2021"},
		{FMRI: "lrc:/etc/rc2_d/S20sysetup", State: svc.StateLegacyRun, STime: "2022"},
	}
}

func TestObserve(t *testing.T) {
	e := NewExporter()
	require.NoError(t, e.Observe(taken, records()))

	assert.Equal(t, 1.0, testutil.ToFloat64(e.state.WithLabelValues("svc:/network/ssh:default", "online")))
	assert.Equal(t, 0.0, testutil.ToFloat64(e.state.WithLabelValues("svc:/network/ssh:default", "disabled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(e.state.WithLabelValues("svc:/network/nfs/server:default", "disabled")))

	assert.Equal(t, float64(1696723200), testutil.ToFloat64(e.startTime.WithLabelValues("svc:/network/ssh:default")))
	assert.Equal(t, 2.0, testutil.ToFloat64(e.processes.WithLabelValues("svc:/network/ssh:default")))
	assert.Equal(t, float64(taken.Unix()), testutil.ToFloat64(e.taken))

	// six non-legacy states for each of two services
	assert.Equal(t, 12, testutil.CollectAndCount(e.state))
	// nfs has no contract
	assert.Equal(t, 1, testutil.CollectAndCount(e.processes))
}

func TestObserve_ReplacesPrevious(t *testing.T) {
	e := NewExporter()
	require.NoError(t, e.Observe(taken, records()))
	require.NoError(t, e.Observe(taken, records()[:1]))

	assert.Equal(t, 1, testutil.CollectAndCount(e.startTime))
}

func TestObserve_BadDate(t *testing.T) {
	e := NewExporter()
	err := e.Observe(taken, []svc.Record{{FMRI: "svc:/site/x:default", STime: "Foo_1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "svc:/site/x:default")
}

func TestWrite(t *testing.T) {
	e := NewExporter()
	require.NoError(t, e.Observe(taken, records()))

	var buf bytes.Buffer
	require.NoError(t, e.Write(&buf))

	out := buf.String()
	assert.Contains(t, out, "# TYPE smf_service_state gauge")
	assert.Contains(t, out, `smf_service_state{fmri="svc:/network/ssh:default",state="online"} 1`)
	assert.Contains(t, out, `smf_service_contract_processes{fmri="svc:/network/ssh:default"} 2`)
	assert.NotContains(t, out, "lrc:/")
}

func TestWriteTextfile(t *testing.T) {
	e := NewExporter()
	require.NoError(t, e.Observe(taken, records()))

	path := filepath.Join(t.TempDir(), "smf.prom")
	require.NoError(t, e.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "smf_service_start_time_seconds")
}
