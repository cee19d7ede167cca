package domain

// Regulator is a supervisory body listed under a country.
type Regulator struct {
	Name     string `json:"name" yaml:"name"`
	URL      string `json:"url" yaml:"url"`
	Scope    string `json:"scope,omitempty" yaml:"scope,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	// ID is optional; when empty a synthetic one is derived from iso3, name and ordinal.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`
}

type Rule struct {
	Code  string `json:"code" yaml:"code"`
	Title string `json:"title" yaml:"title"`
}

// Scores holds the three raw readiness scores. A nil pointer means "absent".
type Scores struct {
	APIMaturity      *float64 `json:"apiMaturity" yaml:"apiMaturity"`
	AuditReadiness   *float64 `json:"auditReadiness" yaml:"auditReadiness"`
	ReportingCadence *float64 `json:"reportingCadence" yaml:"reportingCadence"`
}

// Get returns the score for key, or nil when the key is unknown or absent.
func (s Scores) Get(key ScoreKey) *float64 {
	switch key {
	case ScoreAPIMaturity:
		return s.APIMaturity
	case ScoreAuditReadiness:
		return s.AuditReadiness
	case ScoreReportingCadence:
		return s.ReportingCadence
	}
	return nil
}

type CountryRecord struct {
	ISO3       string      `json:"iso3" yaml:"iso3"`
	Country    string      `json:"country" yaml:"country"`
	Regulators []Regulator `json:"regulators" yaml:"regulators"`
	Rules      []Rule      `json:"rules" yaml:"rules"`
	Sources    []string    `json:"sources" yaml:"sources"`
	Scores     Scores      `json:"scores" yaml:"scores"`
}

// Dataset is the ordered list of country records. Order is significant: it breaks
// benchmark ties.
type Dataset []CountryRecord

type NewsItem struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Published   string `json:"published"`
	CountryISO3 string `json:"countryIso3,omitempty"`
}

// Float is a small helper for building Scores literals.
func Float(v float64) *float64 { return &v }
