package journal

import (
	"bufio"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vburojevic/logstat/internal/domain"
)

var (
	testRealtime  = time.Date(2017, 4, 5, 10, 57, 2, 667666000, time.UTC)
	testMonotonic = uint64(71669967)
)

const timestamps = `"__REALTIME_TIMESTAMP":"1491389822667666","__MONOTONIC_TIMESTAMP":"71669967"`

func common(priority uint8, message string) domain.Common {
	return domain.Common{
		Priority:           priority,
		Message:            message,
		RealtimeTimestamp:  testRealtime,
		MonotonicTimestamp: testMonotonic,
	}
}

func TestClassifier_TypedVariants(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name string
		line string
		want domain.Record
	}{
		{
			name: "journal",
			line: `{"_TRANSPORT":"journal","_PID":"1","PRIORITY":"6","_SYSTEMD_UNIT":"docker.service","MESSAGE":"Started",` + timestamps + `}`,
			want: domain.Journal{PID: 1, SystemdUnit: "docker.service", Common: common(6, "Started")},
		},
		{
			name: "journal without unit defaults to unknown",
			line: `{"_TRANSPORT":"journal","_PID":"42","PRIORITY":"4","MESSAGE":"hi",` + timestamps + `}`,
			want: domain.Journal{PID: 42, SystemdUnit: "unknown", Common: common(4, "hi")},
		},
		{
			name: "journal without priority defaults to zero",
			line: `{"_TRANSPORT":"journal","_PID":"42","MESSAGE":"hi",` + timestamps + `}`,
			want: domain.Journal{PID: 42, SystemdUnit: "unknown", Common: common(0, "hi")},
		},
		{
			name: "journal with non-numeric priority degrades to zero",
			line: `{"_TRANSPORT":"journal","_PID":"42","PRIORITY":"loud","MESSAGE":"hi",` + timestamps + `}`,
			want: domain.Journal{PID: 42, SystemdUnit: "unknown", Common: common(0, "hi")},
		},
		{
			name: "kernel",
			line: `{"_TRANSPORT":"kernel","PRIORITY":"5","SYSLOG_IDENTIFIER":"kernel","MESSAGE":"Linux version",` + timestamps + `}`,
			want: domain.Kernel{Identifier: "kernel", Common: common(5, "Linux version")},
		},
		{
			name: "kernel without identifier",
			line: `{"_TRANSPORT":"kernel","PRIORITY":"5","MESSAGE":"x",` + timestamps + `}`,
			want: domain.Kernel{Identifier: "unknown", Common: common(5, "x")},
		},
		{
			name: "stdout",
			line: `{"_TRANSPORT":"stdout","PRIORITY":"6","SYSLOG_IDENTIFIER":"dockerd","_SYSTEMD_UNIT":"docker.service","MESSAGE":"listening",` + timestamps + `}`,
			want: domain.Stdout{Identifier: "dockerd", SystemdUnit: "docker.service", Common: common(6, "listening")},
		},
		{
			name: "audit without priority",
			line: `{"_TRANSPORT":"audit","MESSAGE":"SERVICE_START",` + timestamps + `}`,
			want: domain.Audit{Identifier: "unknown", Common: common(0, "SERVICE_START")},
		},
		{
			name: "syslog",
			line: `{"_TRANSPORT":"syslog","PRIORITY":"3","SYSLOG_IDENTIFIER":"sshd","MESSAGE":"auth failure",` + timestamps + `}`,
			want: domain.Syslog{Identifier: "sshd", Common: common(3, "auth failure")},
		},
		{
			name: "driver",
			line: `{"_TRANSPORT":"driver","PRIORITY":"6","SYSLOG_IDENTIFIER":"systemd-journald","MESSAGE":"Journal started",` + timestamps + `}`,
			want: domain.Driver{Identifier: "systemd-journald", Common: common(6, "Journal started")},
		},
		{
			name: "extra fields are ignored",
			line: `{"_HOSTNAME":"master","_TRANSPORT":"syslog","PRIORITY":"3","MESSAGE":"m","_UID":"0",` + timestamps + `}`,
			want: domain.Syslog{Identifier: "unknown", Common: common(3, "m")},
		},
		{
			name: "empty message",
			line: `{"_TRANSPORT":"driver","PRIORITY":"6","MESSAGE":"",` + timestamps + `}`,
			want: domain.Driver{Identifier: "unknown", Common: common(6, "")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Classify([]byte(tt.line))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifier_InvalidFallback(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name       string
		line       string
		identifier string
		priority   uint8
		reason     string
	}{
		{
			name:       "unknown transport",
			line:       `{"_TRANSPORT":"unknown_thing","PRIORITY":"3",` + timestamps + `}`,
			identifier: "unknown",
			priority:   3,
			reason:     "unknown transport",
		},
		{
			name:       "missing transport",
			line:       `{"SYSLOG_IDENTIFIER":"cron","MESSAGE":"x",` + timestamps + `}`,
			identifier: "cron",
			reason:     "_TRANSPORT: missing field",
		},
		{
			name:       "journal without pid",
			line:       `{"_TRANSPORT":"journal","PRIORITY":"6","MESSAGE":"x",` + timestamps + `}`,
			identifier: "unknown",
			priority:   6,
			reason:     "_PID: missing field",
		},
		{
			name:   "journal with non-numeric pid",
			line:   `{"_TRANSPORT":"journal","_PID":"init","MESSAGE":"x",` + timestamps + `}`,
			reason: "_PID",
		},
		{
			name:   "journal with out of range pid",
			line:   `{"_TRANSPORT":"journal","_PID":"70000","MESSAGE":"x",` + timestamps + `}`,
			reason: "_PID",
		},
		{
			name:       "binary message",
			line:       `{"_TRANSPORT":"stdout","PRIORITY":"6","SYSLOG_IDENTIFIER":"spike","MESSAGE":[27,91,51],` + timestamps + `}`,
			identifier: "spike",
			priority:   6,
			reason:     "MESSAGE: expected a string",
		},
		{
			name:     "missing message",
			line:     `{"_TRANSPORT":"syslog","PRIORITY":"6",` + timestamps + `}`,
			priority: 6,
			reason:   "MESSAGE: missing field",
		},
		{
			name:   "kernel without priority",
			line:   `{"_TRANSPORT":"kernel","MESSAGE":"x",` + timestamps + `}`,
			reason: "PRIORITY: missing field",
		},
		{
			name:   "transport is not a string",
			line:   `{"_TRANSPORT":7,"MESSAGE":"x",` + timestamps + `}`,
			reason: "_TRANSPORT: expected a string",
		},
		{
			name:   "non-string identifier keeps default",
			line:   `{"_TRANSPORT":"kernel","SYSLOG_IDENTIFIER":12,"PRIORITY":"1","MESSAGE":"x",` + timestamps + `}`,
			reason: "SYSLOG_IDENTIFIER",
			// the minimal shape never fails on identifier
			identifier: "unknown",
			priority:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Classify([]byte(tt.line))
			require.NoError(t, err)

			inv, ok := got.(domain.Invalid)
			require.True(t, ok, "expected Invalid, got %T", got)
			assert.Equal(t, domain.FacilityInvalid, inv.Facility())
			assert.Contains(t, inv.Error, tt.reason)
			assert.Equal(t, testRealtime, inv.RealtimeTimestamp)
			assert.Equal(t, testMonotonic, inv.MonotonicTimestamp)
			assert.Empty(t, inv.Message)
			if tt.identifier != "" {
				assert.Equal(t, tt.identifier, inv.Identifier)
			}
			assert.Equal(t, tt.priority, inv.Priority)
		})
	}
}

func TestClassifier_HardFailure(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name    string
		line    string
		wantErr error
	}{
		{name: "plain text", line: `not json`, wantErr: ErrNotJSON},
		{name: "truncated object", line: `{"_TRANSPORT":"journal"`, wantErr: ErrNotJSON},
		{name: "empty line", line: ``, wantErr: ErrEmptyLine},
		{name: "whitespace line", line: " \t\r", wantErr: ErrEmptyLine},
		{name: "json string", line: `"not json"`, wantErr: ErrNotObject},
		{name: "json array", line: `[1,2,3]`, wantErr: ErrNotObject},
		{name: "missing realtime", line: `{"_TRANSPORT":"journal","__MONOTONIC_TIMESTAMP":"1"}`, wantErr: ErrMissing},
		{name: "missing monotonic", line: `{"_TRANSPORT":"journal","__REALTIME_TIMESTAMP":"1"}`, wantErr: ErrMissing},
		{name: "non-string timestamp", line: `{"__REALTIME_TIMESTAMP":1491389822667666,"__MONOTONIC_TIMESTAMP":"1"}`, wantErr: ErrNotString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Classify([]byte(tt.line))
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("non-numeric timestamp names the field", func(t *testing.T) {
		_, err := c.Classify([]byte(`{"_TRANSPORT":"journal","__REALTIME_TIMESTAMP":"soon","__MONOTONIC_TIMESTAMP":"1"}`))
		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, FieldRealtime, fe.Field)
	})
}

func TestClassifierFixtures(t *testing.T) {
	f, err := os.Open("testdata/sample.ndjson")
	require.NoError(t, err)
	defer f.Close()

	wants := []domain.Facility{
		domain.FacilityJournal,
		domain.FacilityKernel,
		domain.FacilityStdout,
		domain.FacilityAudit,
		domain.FacilitySyslog,
		domain.FacilityDriver,
		domain.FacilityInvalid,
	}

	c := NewClassifier()
	sc := bufio.NewScanner(f)
	i := 0
	for sc.Scan() {
		require.Less(t, i, len(wants), "fixture count mismatch")
		rec, err := c.Classify(sc.Bytes())
		require.NoError(t, err)
		assert.Equal(t, wants[i], rec.Facility(), "line %d", i+1)
		i++
	}
	require.NoError(t, sc.Err())
	require.Equal(t, len(wants), i)
}
