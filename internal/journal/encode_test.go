package journal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vburojevic/logstat/internal/domain"
)

func TestEncode_RoundTrip(t *testing.T) {
	records := []domain.Record{
		domain.Journal{PID: 1, SystemdUnit: "docker.service", Common: common(6, "Started")},
		domain.Kernel{Identifier: "kernel", Common: common(5, "Linux version")},
		domain.Stdout{Identifier: "dockerd", SystemdUnit: "docker.service", Common: common(6, `quoted "text" and ünïcode`)},
		domain.Audit{Identifier: "audit", Common: common(0, "SERVICE_START")},
		domain.Syslog{Identifier: "sshd", Common: common(3, "auth failure")},
		domain.Driver{Identifier: "systemd-journald", Common: common(7, "")},
	}

	c := NewClassifier()
	for _, rec := range records {
		t.Run(string(rec.Facility()), func(t *testing.T) {
			line, err := Encode(rec)
			require.NoError(t, err)

			got, err := c.Classify(line)
			require.NoError(t, err)
			assert.Equal(t, rec, got)
		})
	}
}

func TestEncode_Invalid(t *testing.T) {
	inv := domain.Invalid{Identifier: "cron", Error: "diagnostic", Common: common(3, "")}

	line, err := Encode(inv)
	require.NoError(t, err)

	var m map[string]string
	require.NoError(t, json.Unmarshal(line, &m))
	assert.NotContains(t, m, FieldTransport)
	assert.NotContains(t, m, FieldMessage)

	got, err := NewClassifier().Classify(line)
	require.NoError(t, err)
	back, ok := got.(domain.Invalid)
	require.True(t, ok)
	assert.Equal(t, inv.Identifier, back.Identifier)
	assert.Equal(t, inv.Common, back.Common)
	assert.NotEqual(t, inv.Error, back.Error)
}
