package theme

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
)

// DefaultMode applies when neither a stored nor a system preference is known.
const DefaultMode = domain.ThemeDark

// ParsePreference validates a stored preference. "" and "system" mean unset.
func ParsePreference(v string) (domain.ThemeMode, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "system":
		return "", nil
	case string(domain.ThemeLight):
		return domain.ThemeLight, nil
	case string(domain.ThemeDark):
		return domain.ThemeDark, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidTheme, v)
}

// Resolve picks the effective mode: stored preference, then system preference, then
// DefaultMode.
func Resolve(stored, system domain.ThemeMode) domain.ThemeMode {
	if stored == domain.ThemeLight || stored == domain.ThemeDark {
		return stored
	}
	if system == domain.ThemeLight || system == domain.ThemeDark {
		return system
	}
	return DefaultMode
}

// Tokens are the named visual values read by rendering.
type Tokens map[string]string

// Get returns the value of name, falling back to fallback when the token is unset.
func (t Tokens) Get(name, fallback string) string {
	if v, ok := t[name]; ok && v != "" {
		return v
	}
	return fallback
}

var graphColors = []string{
	"#2F81F7", "#3FB950", "#D29922", "#F85149", "#A371F7", "#39C5CF",
	"#DB61A2", "#8B949E", "#F0883E", "#56D364", "#79C0FF", "#E3B341",
}

func withGraphColors(base Tokens) Tokens {
	for i, c := range graphColors {
		base[fmt.Sprintf("graph-color-%d", i+1)] = c
	}
	return base
}

// TokensFor returns the token set of mode.
func TokensFor(mode domain.ThemeMode) Tokens {
	if mode == domain.ThemeLight {
		return withGraphColors(Tokens{
			"accent":       "#0969DA",
			"accent-2":     "#54AEFF",
			"bg":           "#FFFFFF",
			"bg-2":         "#F6F8FA",
			"bg-3":         "#EAEEF2",
			"line":         "#D0D7DE",
			"muted":        "#57606A",
			"danger":       "#CF222E",
			"warning":      "#9A6700",
			"success":      "#1A7F37",
			"text-default": "#1F2328",
		})
	}
	return withGraphColors(Tokens{
		"accent":       "#2F81F7",
		"accent-2":     "#A5D6FF",
		"bg":           "#0D1117",
		"bg-2":         "#161B22",
		"bg-3":         "#21262D",
		"line":         "#30363D",
		"muted":        "#8B949E",
		"danger":       "#F85149",
		"warning":      "#D29922",
		"success":      "#3FB950",
		"text-default": "#E6EDF3",
	})
}

// SystemPreference reads the client-hint header value ("light"/"dark").
func SystemPreference(header string) domain.ThemeMode {
	switch strings.ToLower(strings.TrimSpace(header)) {
	case "light":
		return domain.ThemeLight
	case "dark":
		return domain.ThemeDark
	}
	return ""
}
