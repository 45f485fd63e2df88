package svc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSvcs = `
online         Oct_08     63 svc:/network/ssh:default
online*      12:01:44    101 svc:/system/filesystem/local:default
disabled         2021      - svc:/network/nfs/server:default
maintenance    Jan_12      - svc:/application/pkgsrc/nginx:default
legacy_run       2022      - lrc:/etc/rc2_d/S20sysetup
`

func TestParseSvcs(t *testing.T) {
	records, err := ParseSvcs(strings.NewReader(sampleSvcs))
	require.NoError(t, err)
	require.Len(t, records, 5)

	ssh := records[0]
	assert.Equal(t, "svc:/network/ssh:default", ssh.FMRI)
	assert.Equal(t, StateOnline, ssh.State)
	assert.False(t, ssh.Transitioning)
	assert.Equal(t, "Oct_08", ssh.STime)
	require.True(t, ssh.HasContract())
	assert.Equal(t, 63, *ssh.ContractID)
	assert.False(t, ssh.MembersKnown())

	fs := records[1]
	assert.True(t, fs.Transitioning)
	assert.Equal(t, StateOnline, fs.State)
	assert.Equal(t, "12:01:44", fs.STime)

	nfs := records[2]
	assert.Equal(t, StateDisabled, nfs.State)
	assert.False(t, nfs.HasContract())

	assert.Equal(t, StateMaintenance, records[3].State)
	assert.Equal(t, StateLegacyRun, records[4].State)
}

func TestParseSvcs_Empty(t *testing.T) {
	records, err := ParseSvcs(strings.NewReader("\n\n"))
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestParseSvcs_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"columns", "online Oct_08 svc:/network/ssh:default", "want 4 columns"},
		{"state", "running Oct_08 1 svc:/network/ssh:default", "unknown service state"},
		{"ctid", "online Oct_08 x1 svc:/network/ssh:default", "invalid contract id"},
		{"fmri", "online Oct_08 1 network/ssh", "invalid fmri"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSvcs(strings.NewReader("\n" + tt.input + "\n"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 2")
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParseState(t *testing.T) {
	for _, name := range []string{"online", "ONLINE", "ON"} {
		st, err := ParseState(name)
		require.NoError(t, err)
		assert.Equal(t, StateOnline, st)
	}

	st, err := ParseState("MNT")
	require.NoError(t, err)
	assert.Equal(t, StateMaintenance, st)
	assert.Equal(t, "maintenance", st.String())
	assert.Equal(t, "MNT", st.Short())

	_, err = ParseState("bogus")
	assert.Error(t, err)

	assert.Equal(t, "State(42)", State(42).String())
	assert.Equal(t, "?", State(42).Short())
}

func TestParseFMRI(t *testing.T) {
	f, err := ParseFMRI("svc:/network/ssh:default")
	require.NoError(t, err)
	assert.Equal(t, FMRI{Scheme: "svc", Service: "network/ssh", Instance: "default"}, f)
	assert.Equal(t, "svc:/network/ssh:default", f.String())

	f, err = ParseFMRI("svc:/milestone/multi-user")
	require.NoError(t, err)
	assert.Equal(t, "", f.Instance)

	f, err = ParseFMRI("lrc:/etc/rc2_d/S20sysetup")
	require.NoError(t, err)
	assert.Equal(t, "etc/rc2_d/S20sysetup", f.Service)
	assert.Equal(t, "lrc:/etc/rc2_d/S20sysetup", f.String())

	for _, bad := range []string{"", "network/ssh", "svc:/", "svc:/:default", "foo:/bar", "lrc:/"} {
		_, err := ParseFMRI(bad)
		assert.Error(t, err, "fmri %q", bad)
	}
}

func TestParseMembers(t *testing.T) {
	input := `
# ctid pids
63 812 811
101
`
	members, err := ParseMembers(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []int{811, 812}, members[63])
	assert.NotNil(t, members[101])
	assert.Empty(t, members[101])

	_, err = ParseMembers(strings.NewReader("x 1"))
	assert.Error(t, err)
	_, err = ParseMembers(strings.NewReader("1 y"))
	assert.Error(t, err)
}

func TestAttachMembers(t *testing.T) {
	records, err := ParseSvcs(strings.NewReader(sampleSvcs))
	require.NoError(t, err)

	AttachMembers(records, map[int][]int{63: {811, 812}})

	assert.Equal(t, []int{811, 812}, records[0].Members)
	assert.True(t, records[0].MembersKnown())
	assert.False(t, records[1].MembersKnown(), "contract 101 not listed")
	assert.False(t, records[2].MembersKnown())
}

func TestStates(t *testing.T) {
	states := States()
	require.Len(t, states, 7)
	assert.Equal(t, StateUninitialized, states[0])
	assert.Equal(t, StateLegacyRun, states[len(states)-1])

	for _, st := range states {
		got, err := ParseState(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}
}
