package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vburojevic/logstat/internal/domain"
)

func at(ts time.Time, priority uint8) domain.Common {
	return domain.Common{RealtimeTimestamp: ts, Priority: priority}
}

func TestTimeRange(t *testing.T) {
	from := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	until := time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC)

	t.Run("closed range", func(t *testing.T) {
		f, err := NewTimeRange(from, until)
		require.NoError(t, err)

		assert.False(t, f.Match(domain.Kernel{Common: at(from.Add(-time.Second), 0)}))
		assert.True(t, f.Match(domain.Kernel{Common: at(from, 0)}))
		assert.True(t, f.Match(domain.Kernel{Common: at(from.Add(30*time.Minute), 0)}))
		assert.False(t, f.Match(domain.Kernel{Common: at(until, 0)}))
	})

	t.Run("open bounds", func(t *testing.T) {
		f, err := NewTimeRange(time.Time{}, until)
		require.NoError(t, err)
		assert.True(t, f.Match(domain.Invalid{Common: at(time.Unix(0, 0), 0)}))

		f, err = NewTimeRange(from, time.Time{})
		require.NoError(t, err)
		assert.True(t, f.Match(domain.Invalid{Common: at(until.Add(24*time.Hour), 0)}))
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		_, err := NewTimeRange(until, from)
		assert.Error(t, err)

		_, err = NewTimeRange(from, from)
		assert.Error(t, err)
	})
}

func TestPriorityFilter(t *testing.T) {
	f := NewPriorityFilter(3)

	assert.True(t, f.Match(domain.Syslog{Common: at(time.Time{}, 0)}))
	assert.True(t, f.Match(domain.Syslog{Common: at(time.Time{}, 3)}))
	assert.False(t, f.Match(domain.Syslog{Common: at(time.Time{}, 4)}))
}

func TestUnitFilter(t *testing.T) {
	f := NewUnitFilter([]string{"docker", "cron.timer"})

	assert.True(t, f.Match(domain.Journal{SystemdUnit: "docker.service"}))
	assert.True(t, f.Match(domain.Stdout{SystemdUnit: "cron.timer"}))
	assert.False(t, f.Match(domain.Journal{SystemdUnit: "sshd.service"}))
	assert.False(t, f.Match(domain.Kernel{}), "records without a unit never match")
}

func TestChain(t *testing.T) {
	t.Run("empty chain matches everything", func(t *testing.T) {
		c := NewChain()
		assert.True(t, c.Match(domain.Driver{}))
		assert.Equal(t, 0, c.Len())
	})

	t.Run("all filters must pass", func(t *testing.T) {
		c := NewChain(NewPriorityFilter(6))
		c.Add(NewUnitFilter([]string{"docker.service"}))
		assert.Equal(t, 2, c.Len())

		assert.True(t, c.Match(domain.Journal{SystemdUnit: "docker.service", Common: at(time.Time{}, 6)}))
		assert.False(t, c.Match(domain.Journal{SystemdUnit: "docker.service", Common: at(time.Time{}, 7)}))
		assert.False(t, c.Match(domain.Journal{SystemdUnit: "cron.service", Common: at(time.Time{}, 1)}))
	})
}
