package metrics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, collapses every run of characters outside [a-z0-9] into a
// single '-' and trims dashes from both ends.
func Slugify(s string) string {
	s = nonSlug.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// RegulatorID returns the explicit regulator ID when present, otherwise the synthetic
// "reg:<iso3>:<slug(name-index)>". index is the regulator's ordinal within its country.
func RegulatorID(iso3 string, reg domain.Regulator, index int) string {
	if id := strings.TrimSpace(reg.ID); id != "" {
		return id
	}
	return fmt.Sprintf("reg:%s:%s", iso3, Slugify(fmt.Sprintf("%s-%d", reg.Name, index)))
}

// CountryNodeID is the graph node ID of a country.
func CountryNodeID(iso3 string) string {
	return "country:" + iso3
}
