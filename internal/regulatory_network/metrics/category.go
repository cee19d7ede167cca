package metrics

import (
	"strings"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
)

const DefaultCategory = "Regulator"

// CategoryRule resolves a category from a regulator, or returns ok=false to defer to the
// next rule.
type CategoryRule struct {
	Name    string
	Resolve func(reg domain.Regulator) (string, bool)
}

type keywordCategory struct {
	keywords []string
	category string
}

// Keyword checks run against the lowercased name in this order.
var nameKeywords = []keywordCategory{
	{keywords: []string{"bank"}, category: "Central Bank"},
	{keywords: []string{"sec", "securities"}, category: "Securities"},
	{keywords: []string{"aml", "fiu", "financial intelligence"}, category: "Financial Intelligence"},
	{keywords: []string{"authority"}, category: "Supervisory Authority"},
}

// CategoryRules is evaluated first-match-wins:
// explicit category > first scope token > name keyword > default.
var CategoryRules = []CategoryRule{
	{Name: "explicit", Resolve: explicitCategory},
	{Name: "scope", Resolve: scopeCategory},
	{Name: "keyword", Resolve: keywordCategoryOf},
	{Name: "default", Resolve: func(domain.Regulator) (string, bool) { return DefaultCategory, true }},
}

// InferCategory applies CategoryRules to reg.
func InferCategory(reg domain.Regulator) string {
	c, _ := InferCategoryWithRule(reg)
	return c
}

// InferCategoryWithRule also reports which rule matched.
func InferCategoryWithRule(reg domain.Regulator) (category, rule string) {
	for _, r := range CategoryRules {
		if c, ok := r.Resolve(reg); ok {
			return c, r.Name
		}
	}
	return DefaultCategory, "default"
}

func explicitCategory(reg domain.Regulator) (string, bool) {
	c := strings.TrimSpace(reg.Category)
	return c, c != ""
}

func scopeCategory(reg domain.Regulator) (string, bool) {
	scope := strings.TrimSpace(reg.Scope)
	if scope == "" {
		return "", false
	}
	token := scope
	if i := strings.IndexAny(scope, "/-"); i >= 0 {
		token = scope[:i]
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func keywordCategoryOf(reg domain.Regulator) (string, bool) {
	lower := strings.ToLower(reg.Name)
	for _, kc := range nameKeywords {
		for _, kw := range kc.keywords {
			if strings.Contains(lower, kw) {
				return kc.category, true
			}
		}
	}
	return "", false
}

// Categories returns the sorted distinct inferred categories of a dataset.
func Categories(ds domain.Dataset) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, rec := range ds {
		for _, reg := range rec.Regulators {
			c := InferCategory(reg)
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	sortStrings(out)
	return out
}
