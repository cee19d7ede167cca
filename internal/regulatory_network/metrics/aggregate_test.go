package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
)

func f(v float64) *float64 { return domain.Float(v) }

func country(iso3, name string, scores domain.Scores, regs []domain.Regulator, rules ...string) domain.CountryRecord {
	rec := domain.CountryRecord{ISO3: iso3, Country: name, Regulators: regs, Scores: scores, Sources: []string{}}
	for _, code := range rules {
		rec.Rules = append(rec.Rules, domain.Rule{Code: code, Title: code + " title"})
	}
	return rec
}

func TestAggregateExample(t *testing.T) {
	ds := domain.Dataset{
		country("USA", "United States", domain.Scores{APIMaturity: f(80), ReportingCadence: f(60)}, nil),
		country("DEU", "Germany", domain.Scores{APIMaturity: f(40), AuditReadiness: f(40), ReportingCadence: f(40)}, nil),
	}

	m := Aggregate(ds)

	require.Len(t, m.Benchmark, 2)
	assert.Equal(t, "USA", m.Benchmark[0].ISO3)
	assert.Equal(t, 1, m.Benchmark[0].Rank)
	assert.InDelta(t, 70, m.Benchmark[0].Scores.Composite, 1e-9)
	assert.Equal(t, "DEU", m.Benchmark[1].ISO3)
	assert.Equal(t, 2, m.Benchmark[1].Rank)
	assert.InDelta(t, 40, m.Benchmark[1].Scores.Composite, 1e-9)

	require.Len(t, m.Distribution, 5)
	assert.Equal(t, []string{"USA"}, m.Distribution[3].ISO3)
	assert.Equal(t, "60-80", m.Distribution[3].ID)
	assert.Equal(t, []string{"DEU"}, m.Distribution[2].ISO3)
	assert.Equal(t, "40 – 60", m.Distribution[2].Label)
	assert.Equal(t, 2, m.Totals.Countries)

	// per-key means: api 60, audit 40, cadence 50
	assert.InDelta(t, 60, m.Averages.APIMaturity, 1e-9)
	assert.InDelta(t, 40, m.Averages.AuditReadiness, 1e-9)
	assert.InDelta(t, 50, m.Averages.ReportingCadence, 1e-9)
	assert.InDelta(t, 50, m.Averages.Composite, 1e-9)
}

func TestSummarize(t *testing.T) {
	t.Run("uses present scores only", func(t *testing.T) {
		s := Summarize(domain.Scores{APIMaturity: f(80), ReportingCadence: f(60)})
		assert.InDelta(t, 70, s.Composite, 1e-9)
		assert.Zero(t, s.AuditReadiness)
	})

	t.Run("no scores is composite zero", func(t *testing.T) {
		s := Summarize(domain.Scores{})
		assert.Zero(t, s.Composite)
		assert.False(t, HasScore(domain.Scores{}))
	})
}

func TestBucketIndex(t *testing.T) {
	cases := map[float64]int{
		-5: 0, 0: 0, 19.99: 0, 20: 1, 39.5: 1, 40: 2, 60: 3, 79.9: 3, 80: 4, 99.9: 4, 100: 4, 150: 4,
	}
	for composite, want := range cases {
		assert.Equal(t, want, BucketIndex(composite), "composite %v", composite)
	}
}

func TestDistributionSkipsCountriesWithoutScores(t *testing.T) {
	ds := domain.Dataset{
		country("KEN", "Kenya", domain.Scores{}, nil),
		country("SGP", "Singapore", domain.Scores{APIMaturity: f(100), AuditReadiness: f(100), ReportingCadence: f(100)}, nil),
	}
	m := Aggregate(ds)

	total := 0
	for _, b := range m.Distribution {
		total += b.Count
	}
	assert.Equal(t, 1, total)
	assert.Equal(t, []string{"SGP"}, m.Distribution[4].ISO3)
}

func TestBenchmarkTiesKeepDatasetOrder(t *testing.T) {
	same := domain.Scores{APIMaturity: f(50)}
	ds := domain.Dataset{
		country("ZAF", "South Africa", same, nil),
		country("AUS", "Australia", same, nil),
		country("BRA", "Brazil", domain.Scores{APIMaturity: f(90)}, nil),
		country("CAN", "Canada", same, nil),
	}
	m := Aggregate(ds)

	var order []string
	for _, b := range m.Benchmark {
		order = append(order, b.ISO3)
	}
	assert.Equal(t, []string{"BRA", "ZAF", "AUS", "CAN"}, order)
	assert.Equal(t, 4, m.Benchmark[3].Rank)
}

func TestRegulatorIndex(t *testing.T) {
	ds := domain.Dataset{
		country("GBR", "United Kingdom", domain.Scores{}, []domain.Regulator{
			{Name: "Prudential Regulation Authority", URL: "https://www.bankofengland.co.uk"},
			{Name: "Financial Conduct Authority", URL: "https://www.fca.org.uk", ID: "  reg:GBR:fca  "},
		}, "A"),
		country("DEU", "Germany", domain.Scores{}, []domain.Regulator{
			{Name: "BaFin", URL: "https://www.bafin.de", Scope: "Banking/Prudential"},
		}, "A", "B"),
		country("AUT", "Austria", domain.Scores{}, []domain.Regulator{
			{Name: "FMA", URL: "https://www.fma.gv.at"},
		}, "C"),
	}
	m := Aggregate(ds)

	var ids []string
	for _, it := range m.Regulators.Items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{
		"reg:DEU:bafin-0",
		"reg:AUT:fma-0",
		"reg:GBR:fca",
		"reg:GBR:prudential-regulation-authority-0",
	}, ids)

	bafin, ok := m.Regulators.Lookup("reg:DEU:bafin-0")
	require.True(t, ok)
	assert.Equal(t, "Banking", bafin.Category)
	assert.Equal(t, 2, bafin.RuleCount)

	fma, ok := m.Regulators.Lookup("reg:AUT:fma-0")
	require.True(t, ok)
	assert.Equal(t, DefaultCategory, fma.Category)

	_, ok = m.Regulators.Lookup("reg:GBR:missing")
	assert.False(t, ok)
	assert.Equal(t, 4, m.Totals.Regulators)
	assert.Equal(t, 4, m.Totals.Rules)
}

func TestRuleCoverage(t *testing.T) {
	ds := domain.Dataset{
		country("USA", "United States", domain.Scores{}, []domain.Regulator{
			{Name: "SEC", URL: "https://www.sec.gov"},
			{Name: "FinCEN", URL: "https://www.fincen.gov"},
		}, "KYC", "AML"),
		country("GBR", "United Kingdom", domain.Scores{}, []domain.Regulator{
			{Name: "FCA", URL: "https://www.fca.org.uk"},
		}, "AML"),
		country("BRA", "Brazil", domain.Scores{}, nil, "PIX"),
	}
	ds[1].Rules[0].Title = "second title"
	m := Aggregate(ds)

	require.Len(t, m.RuleCoverage, 3)
	aml := m.RuleCoverage[0]
	assert.Equal(t, "AML", aml.Code)
	assert.Equal(t, "AML title", aml.Title)
	assert.Equal(t, 2, aml.CountryCount)
	assert.Equal(t, 3, aml.RegulatorCount)
	assert.Equal(t, []string{"GBR", "USA"}, aml.ISO3)
	assert.Equal(t, []string{"reg:USA:sec-0", "reg:USA:fincen-1", "reg:GBR:fca-0"}, aml.RegulatorIDs)

	assert.Equal(t, "KYC", m.RuleCoverage[1].Code)
	assert.Equal(t, "PIX", m.RuleCoverage[2].Code)
	assert.Zero(t, m.RuleCoverage[2].RegulatorCount)
	assert.NotNil(t, m.RuleCoverage[2].RegulatorIDs)
}

func TestAggregateEmpty(t *testing.T) {
	m := Aggregate(domain.Dataset{})
	assert.Zero(t, m.Totals.Countries)
	assert.Len(t, m.Distribution, 5)
	assert.Empty(t, m.Benchmark)
	assert.NotNil(t, m.Regulators.Items)
	assert.Empty(t, m.RuleCoverage)
	assert.Zero(t, m.Averages.Composite)
}
