package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
)

type Totals struct {
	Countries  int `json:"countries"`
	Regulators int `json:"regulators"`
	Rules      int `json:"rules"`
}

type DistributionBucket struct {
	ID    string     `json:"id"`
	Label string     `json:"label"`
	Range [2]float64 `json:"range"`
	Count int        `json:"count"`
	ISO3  []string   `json:"iso3"`
}

type BenchmarkEntry struct {
	ISO3       string       `json:"iso3"`
	Country    string       `json:"country"`
	Scores     ScoreSummary `json:"scores"`
	Regulators int          `json:"regulators"`
	Rules      int          `json:"rules"`
	Rank       int          `json:"rank"`
}

type RegulatorSummary struct {
	ID        string `json:"id"`
	ISO3      string `json:"iso3"`
	Country   string `json:"country"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Scope     string `json:"scope,omitempty"`
	URL       string `json:"url,omitempty"`
	RuleCount int    `json:"ruleCount"`
}

type RegulatorIndex struct {
	Items []RegulatorSummary          `json:"items"`
	ByID  map[string]RegulatorSummary `json:"byId"`
}

// Lookup returns the regulator summary for id.
func (r RegulatorIndex) Lookup(id string) (RegulatorSummary, bool) {
	s, ok := r.ByID[id]
	return s, ok
}

type RuleCoverageEntry struct {
	Code           string   `json:"code"`
	Title          string   `json:"title"`
	CountryCount   int      `json:"countryCount"`
	RegulatorCount int      `json:"regulatorCount"`
	ISO3           []string `json:"iso3"`
	RegulatorIDs   []string `json:"regulatorIds"`
}

// AggregatedMetrics is derived wholesale from a dataset and never mutated afterwards.
type AggregatedMetrics struct {
	Totals       Totals               `json:"totals"`
	Averages     ScoreSummary         `json:"averages"`
	Distribution []DistributionBucket `json:"distribution"`
	Benchmark    []BenchmarkEntry     `json:"benchmark"`
	Regulators   RegulatorIndex       `json:"regulators"`
	RuleCoverage []RuleCoverageEntry  `json:"ruleCoverage"`
}

type bucketDef struct {
	id    string
	label string
	lo    float64
	hi    float64
}

var bucketDefs = []bucketDef{
	{id: "0-20", label: "0 – 20", lo: 0, hi: 20},
	{id: "20-40", label: "20 – 40", lo: 20, hi: 40},
	{id: "40-60", label: "40 – 60", lo: 40, hi: 60},
	{id: "60-80", label: "60 – 80", lo: 60, hi: 80},
	{id: "80-100", label: "80 – 100", lo: 80, hi: 100},
}

// BucketIndex maps a composite to one of the five buckets. The composite is clamped to
// [0,100] and exactly 100 lands in the top bucket.
func BucketIndex(composite float64) int {
	c := math.Max(0, math.Min(100, composite))
	if math.IsNaN(c) {
		c = 0
	}
	idx := int(math.Floor(c / 20))
	if idx > len(bucketDefs)-1 {
		idx = len(bucketDefs) - 1
	}
	return idx
}

type coverageAcc struct {
	code       string
	title      string
	countries  map[string]bool
	regulators []string
	regSeen    map[string]bool
}

// Aggregate computes every derived view over ds. It is pure: the same dataset always
// yields the same result, including synthetic regulator IDs.
func Aggregate(ds domain.Dataset) *AggregatedMetrics {
	totals := Totals{Countries: len(ds)}

	perKey := map[domain.ScoreKey][]float64{}
	buckets := make([]map[string]bool, len(bucketDefs))
	for i := range buckets {
		buckets[i] = map[string]bool{}
	}

	benchmark := make([]BenchmarkEntry, 0, len(ds))
	var regulators []RegulatorSummary
	coverage := map[string]*coverageAcc{}
	var coverageOrder []string

	for _, rec := range ds {
		totals.Regulators += len(rec.Regulators)
		totals.Rules += len(rec.Rules)

		for _, k := range domain.ScoreKeys {
			if v := rec.Scores.Get(k); present(v) {
				perKey[k] = append(perKey[k], *v)
			}
		}

		summary := Summarize(rec.Scores)
		if HasScore(rec.Scores) {
			buckets[BucketIndex(summary.Composite)][rec.ISO3] = true
		}

		benchmark = append(benchmark, BenchmarkEntry{
			ISO3:       rec.ISO3,
			Country:    rec.Country,
			Scores:     summary,
			Regulators: len(rec.Regulators),
			Rules:      len(rec.Rules),
		})

		ids := make([]string, len(rec.Regulators))
		for i, reg := range rec.Regulators {
			ids[i] = RegulatorID(rec.ISO3, reg, i)
			regulators = append(regulators, RegulatorSummary{
				ID:        ids[i],
				ISO3:      rec.ISO3,
				Country:   rec.Country,
				Name:      reg.Name,
				Category:  InferCategory(reg),
				Scope:     reg.Scope,
				URL:       reg.URL,
				RuleCount: len(rec.Rules),
			})
		}

		for _, rule := range rec.Rules {
			acc, ok := coverage[rule.Code]
			if !ok {
				acc = &coverageAcc{
					code:       rule.Code,
					title:      rule.Title,
					countries:  map[string]bool{},
					regulators: []string{},
					regSeen:    map[string]bool{},
				}
				coverage[rule.Code] = acc
				coverageOrder = append(coverageOrder, rule.Code)
			}
			acc.countries[rec.ISO3] = true
			for _, id := range ids {
				if !acc.regSeen[id] {
					acc.regSeen[id] = true
					acc.regulators = append(acc.regulators, id)
				}
			}
		}
	}

	return &AggregatedMetrics{
		Totals:       totals,
		Averages:     averages(perKey),
		Distribution: distribution(buckets),
		Benchmark:    rank(benchmark),
		Regulators:   indexRegulators(regulators),
		RuleCoverage: ruleCoverage(coverage, coverageOrder),
	}
}

// averages takes the per-key mean over countries reporting that key; the composite is
// the mean of the per-key averages that had any value.
func averages(perKey map[domain.ScoreKey][]float64) ScoreSummary {
	var out ScoreSummary
	var parts []float64
	for _, k := range domain.ScoreKeys {
		vals := perKey[k]
		if len(vals) == 0 {
			continue
		}
		m := stat.Mean(vals, nil)
		out.set(k, m)
		parts = append(parts, m)
	}
	if len(parts) > 0 {
		out.Composite = stat.Mean(parts, nil)
	}
	return out
}

func distribution(buckets []map[string]bool) []DistributionBucket {
	out := make([]DistributionBucket, len(bucketDefs))
	for i, def := range bucketDefs {
		iso := make([]string, 0, len(buckets[i]))
		for code := range buckets[i] {
			iso = append(iso, code)
		}
		sort.Strings(iso)
		out[i] = DistributionBucket{
			ID:    def.id,
			Label: def.label,
			Range: [2]float64{def.lo, def.hi},
			Count: len(iso),
			ISO3:  iso,
		}
	}
	return out
}

// rank orders by composite descending; ties keep dataset order.
func rank(entries []BenchmarkEntry) []BenchmarkEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Scores.Composite > entries[j].Scores.Composite
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func indexRegulators(items []RegulatorSummary) RegulatorIndex {
	col := newCollator()
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.RuleCount != b.RuleCount {
			return a.RuleCount > b.RuleCount
		}
		if a.Country != b.Country {
			return col.CompareString(a.Country, b.Country) < 0
		}
		return col.CompareString(a.Name, b.Name) < 0
	})

	byID := make(map[string]RegulatorSummary, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	if items == nil {
		items = []RegulatorSummary{}
	}
	return RegulatorIndex{Items: items, ByID: byID}
}

func ruleCoverage(coverage map[string]*coverageAcc, order []string) []RuleCoverageEntry {
	out := make([]RuleCoverageEntry, 0, len(order))
	for _, code := range order {
		acc := coverage[code]
		iso := make([]string, 0, len(acc.countries))
		for c := range acc.countries {
			iso = append(iso, c)
		}
		sort.Strings(iso)
		out = append(out, RuleCoverageEntry{
			Code:           acc.code,
			Title:          acc.title,
			CountryCount:   len(iso),
			RegulatorCount: len(acc.regulators),
			ISO3:           iso,
			RegulatorIDs:   acc.regulators,
		})
	}

	col := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CountryCount != out[j].CountryCount {
			return out[i].CountryCount > out[j].CountryCount
		}
		return col.CompareString(out[i].Code, out[j].Code) < 0
	})
	return out
}
