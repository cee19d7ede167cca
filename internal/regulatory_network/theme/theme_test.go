package theme

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
)

func TestParsePreference(t *testing.T) {
	for in, want := range map[string]domain.ThemeMode{
		"":        "",
		"system":  "",
		" Light ": domain.ThemeLight,
		"DARK":    domain.ThemeDark,
	} {
		got, err := ParsePreference(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParsePreference("sepia")
	assert.ErrorIs(t, err, domain.ErrInvalidTheme)
}

func TestResolvePrecedence(t *testing.T) {
	assert.Equal(t, domain.ThemeLight, Resolve(domain.ThemeLight, domain.ThemeDark), "stored wins")
	assert.Equal(t, domain.ThemeLight, Resolve("", domain.ThemeLight), "then system")
	assert.Equal(t, DefaultMode, Resolve("", ""))
	assert.Equal(t, DefaultMode, Resolve("bogus", "bogus"))
}

func TestTokensFor(t *testing.T) {
	dark, light := TokensFor(domain.ThemeDark), TokensFor(domain.ThemeLight)
	assert.Equal(t, "#0D1117", dark.Get("bg", ""))
	assert.Equal(t, "#FFFFFF", light.Get("bg", ""))
	for i := 1; i <= 12; i++ {
		assert.NotEmpty(t, dark.Get("graph-color-"+strconv.Itoa(i), ""))
	}
	assert.Equal(t, "#123456", dark.Get("missing", "#123456"))
	assert.Equal(t, len(dark), len(light))
}

func TestSystemPreference(t *testing.T) {
	assert.Equal(t, domain.ThemeLight, SystemPreference(" light"))
	assert.Equal(t, domain.ThemeDark, SystemPreference("Dark"))
	assert.Equal(t, domain.ThemeMode(""), SystemPreference("no-preference"))
}
