package service

import (
	"context"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/repository"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/theme"
)

// ThemeView is the resolved theme of one client.
type ThemeView struct {
	Stored   domain.ThemeMode `json:"stored,omitempty"`
	System   domain.ThemeMode `json:"system,omitempty"`
	Resolved domain.ThemeMode `json:"resolved"`
	Tokens   theme.Tokens     `json:"tokens"`
}

// ThemeService resolves theme preferences with stored → system → default precedence.
type ThemeService struct {
	store repository.ThemeStore
}

func NewThemeService(store repository.ThemeStore) *ThemeService {
	return &ThemeService{store: store}
}

// Resolve returns the effective theme of clientID given the client's system hint. A
// failing store is treated as no stored preference.
func (s *ThemeService) Resolve(ctx context.Context, clientID string, system domain.ThemeMode) ThemeView {
	var stored domain.ThemeMode
	if clientID != "" {
		if v, err := s.store.Get(ctx, clientID); err == nil {
			stored, _ = theme.ParsePreference(string(v))
		}
	}
	resolved := theme.Resolve(stored, system)
	return ThemeView{Stored: stored, System: system, Resolved: resolved, Tokens: theme.TokensFor(resolved)}
}

// SetPreference stores pref for clientID. "system" or "" clears the stored preference.
func (s *ThemeService) SetPreference(ctx context.Context, clientID, pref string, system domain.ThemeMode) (ThemeView, error) {
	mode, err := theme.ParsePreference(pref)
	if err != nil {
		return ThemeView{}, err
	}
	if err := s.store.Set(ctx, clientID, mode); err != nil {
		return ThemeView{}, err
	}
	return s.Resolve(ctx, clientID, system), nil
}
