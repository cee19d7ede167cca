package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
)

// ScoreSummary carries the three raw scores (0 when absent) and their composite.
type ScoreSummary struct {
	APIMaturity      float64 `json:"apiMaturity"`
	AuditReadiness   float64 `json:"auditReadiness"`
	ReportingCadence float64 `json:"reportingCadence"`
	Composite        float64 `json:"composite"`
}

func (s *ScoreSummary) set(key domain.ScoreKey, v float64) {
	switch key {
	case domain.ScoreAPIMaturity:
		s.APIMaturity = v
	case domain.ScoreAuditReadiness:
		s.AuditReadiness = v
	case domain.ScoreReportingCadence:
		s.ReportingCadence = v
	}
}

// Get returns the value stored for key.
func (s ScoreSummary) Get(key domain.ScoreKey) float64 {
	switch key {
	case domain.ScoreAPIMaturity:
		return s.APIMaturity
	case domain.ScoreAuditReadiness:
		return s.AuditReadiness
	case domain.ScoreReportingCadence:
		return s.ReportingCadence
	}
	return 0
}

func present(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// HasScore reports whether at least one component score is present.
func HasScore(s domain.Scores) bool {
	for _, k := range domain.ScoreKeys {
		if present(s.Get(k)) {
			return true
		}
	}
	return false
}

// Summarize computes the composite as the mean of the present component scores only;
// with none present the composite is 0.
func Summarize(s domain.Scores) ScoreSummary {
	var out ScoreSummary
	values := make([]float64, 0, len(domain.ScoreKeys))
	for _, k := range domain.ScoreKeys {
		v := s.Get(k)
		if !present(v) {
			continue
		}
		out.set(k, *v)
		values = append(values, *v)
	}
	if len(values) > 0 {
		out.Composite = stat.Mean(values, nil)
	}
	return out
}
