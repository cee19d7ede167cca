package selection

import (
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/metrics"
)

// State is the ephemeral UI selection. The zero value selects nothing.
type State struct {
	Country     string `json:"country,omitempty"`
	RegulatorID string `json:"regulatorId,omitempty"`
}

// Reconcile clears a selected regulator that is absent from the new regulator index.
// The selected country is kept; a country missing from the dataset is rendered as a
// placeholder rather than dropped.
func (s State) Reconcile(m *metrics.AggregatedMetrics) State {
	if s.RegulatorID == "" {
		return s
	}
	if m == nil {
		s.RegulatorID = ""
		return s
	}
	if _, ok := m.Regulators.Lookup(s.RegulatorID); !ok {
		s.RegulatorID = ""
	}
	return s
}

// ToggleRegulator selects id, or clears the selection when id is already selected.
func (s State) ToggleRegulator(id string) State {
	if s.RegulatorID == id {
		s.RegulatorID = ""
		return s
	}
	s.RegulatorID = id
	return s
}

// ResolveMode falls back to global when country mode has no selected country.
func ResolveMode(requested domain.GraphMode, country string) domain.GraphMode {
	if requested == domain.ModeCountry && country == "" {
		return domain.ModeGlobal
	}
	if requested != domain.ModeCountry {
		return domain.ModeGlobal
	}
	return requested
}

// DefaultMode is country when a country is selected, global otherwise.
func DefaultMode(country string) domain.GraphMode {
	if country != "" {
		return domain.ModeCountry
	}
	return domain.ModeGlobal
}
