package metrics

import (
	"fmt"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
)

var ruleCodes = []string{"AML", "KYC", "PSD2", "BASEL"}

// datasetFrom spreads names over countries of up to three regulators each. Scores and
// rules are derived from the position so the generated datasets cover ties and gaps.
func datasetFrom(names []string) domain.Dataset {
	var ds domain.Dataset
	for i := 0; i*3 < len(names); i++ {
		rec := domain.CountryRecord{
			ISO3:    fmt.Sprintf("C%02d", i),
			Country: fmt.Sprintf("Country %d", i),
			Sources: []string{},
		}
		end := min(len(names), i*3+3)
		for _, n := range names[i*3 : end] {
			rec.Regulators = append(rec.Regulators, domain.Regulator{Name: n, URL: "https://example.org"})
		}
		rec.Rules = []domain.Rule{
			{Code: ruleCodes[i%len(ruleCodes)], Title: "t"},
			{Code: ruleCodes[(i+1)%len(ruleCodes)], Title: "t"},
		}
		if i%3 != 0 {
			rec.Scores.APIMaturity = domain.Float(float64((i * 37) % 101))
		}
		ds = append(ds, rec)
	}
	return ds
}

type coverageKey struct {
	countries  int
	regulators int
	iso3       string
	ids        string
}

func coverageSets(m *AggregatedMetrics) map[string]coverageKey {
	out := map[string]coverageKey{}
	for _, e := range m.RuleCoverage {
		ids := append([]string{}, e.RegulatorIDs...)
		sort.Strings(ids)
		out[e.Code] = coverageKey{
			countries:  e.CountryCount,
			regulators: e.RegulatorCount,
			iso3:       fmt.Sprint(e.ISO3),
			ids:        fmt.Sprint(ids),
		}
	}
	return out
}

func TestRegulatorIDsStableAndUnique(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("re-aggregating yields the same unique ids", prop.ForAll(
		func(names []string) bool {
			ds := datasetFrom(names)
			a, b := Aggregate(ds), Aggregate(ds)
			if len(a.Regulators.Items) != len(names) || len(a.Regulators.ByID) != len(names) {
				return false
			}
			for i := range a.Regulators.Items {
				if a.Regulators.Items[i].ID != b.Regulators.Items[i].ID {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

func TestRuleCoverageOrderIndependent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("coverage sets ignore dataset order", prop.ForAll(
		func(names []string, shift int) bool {
			ds := datasetFrom(names)
			if len(ds) == 0 {
				return true
			}
			rotated := append(append(domain.Dataset{}, ds[shift%len(ds):]...), ds[:shift%len(ds)]...)
			reversed := make(domain.Dataset, len(ds))
			for i, rec := range ds {
				reversed[len(ds)-1-i] = rec
			}

			want := coverageSets(Aggregate(ds))
			return fmt.Sprint(want) == fmt.Sprint(coverageSets(Aggregate(rotated))) &&
				fmt.Sprint(want) == fmt.Sprint(coverageSets(Aggregate(reversed)))
		},
		gen.SliceOf(gen.AlphaString()),
		gen.IntRange(0, 50),
	))

	properties.TestingRun(t)
}

func TestBucketsPartitionRange(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("every composite in [0,100] lands in the bucket covering it", prop.ForAll(
		func(c float64) bool {
			i := BucketIndex(c)
			def := bucketDefs[i]
			if c == 100 {
				return i == len(bucketDefs)-1
			}
			return c >= def.lo && c < def.hi
		},
		gen.Float64Range(0, 100),
	))

	properties.TestingRun(t)
}
