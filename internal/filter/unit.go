package filter

import (
	"strings"

	"github.com/vburojevic/logstat/internal/domain"
)

// UnitFilter keeps records produced by one of the given systemd units.
// Records without a unit never match. Names without a suffix are taken
// to be services, as journalctl -u does.
type UnitFilter struct {
	units map[string]struct{}
}

// NewUnitFilter creates a unit filter
func NewUnitFilter(units []string) *UnitFilter {
	set := make(map[string]struct{}, len(units))
	for _, u := range units {
		if !strings.Contains(u, ".") {
			u += ".service"
		}
		set[u] = struct{}{}
	}
	return &UnitFilter{units: set}
}

// Match returns true if the record's unit is in the set
func (f *UnitFilter) Match(rec domain.Record) bool {
	unit, ok := domain.ServiceUnit(rec)
	if !ok {
		return false
	}
	_, ok = f.units[unit]
	return ok
}
