package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/metrics"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/selection"
)

// DatasetLoader is the part of loader.Loader the dashboard depends on.
type DatasetLoader interface {
	Load(ctx context.Context, candidates []string) (domain.Dataset, error)
	LoadNews(ctx context.Context, candidates []string) []domain.NewsItem
}

// Snapshot is one immutable generation of loaded data. A reload replaces it wholesale.
type Snapshot struct {
	Dataset  domain.Dataset                  `json:"dataset"`
	ByISO3   map[string]domain.CountryRecord `json:"-"`
	News     []domain.NewsItem               `json:"-"`
	Version  string                          `json:"version"`
	LoadedAt time.Time                       `json:"loadedAt"`
	Loading  bool                            `json:"loading"`
	Error    string                          `json:"error,omitempty"`
}

// DashboardService owns the loaded dataset, its derived metrics and the selection of the
// single logical user.
type DashboardService struct {
	loader         DatasetLoader
	datasetSources []string
	newsSources    []string
	cache          *metrics.Cache

	mu        sync.RWMutex
	snap      *Snapshot
	selection selection.State

	reloadMu sync.Mutex
}

// NewDashboardService creates a new DashboardService. Until the first Reload the
// snapshot reports loading.
func NewDashboardService(l DatasetLoader, datasetSources, newsSources []string) *DashboardService {
	return &DashboardService{
		loader:         l,
		datasetSources: datasetSources,
		newsSources:    newsSources,
		cache:          metrics.NewCache(),
		snap: &Snapshot{
			Dataset: domain.Dataset{},
			ByISO3:  map[string]domain.CountryRecord{},
			News:    []domain.NewsItem{},
			Loading: true,
		},
	}
}

// Reload fetches dataset and news from the configured sources and swaps the snapshot.
// A failed load leaves an empty dataset with the error message, like the initial
// load does.
func (s *DashboardService) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	ds, err := s.loader.Load(ctx, s.datasetSources)
	news := s.loader.LoadNews(ctx, s.newsSources)

	next := &Snapshot{
		Dataset:  ds,
		News:     news,
		Version:  uuid.NewString(),
		LoadedAt: time.Now().UTC(),
	}
	if err != nil {
		next.Dataset = domain.Dataset{}
		next.Error = err.Error()
	}
	if next.Dataset == nil {
		next.Dataset = domain.Dataset{}
	}
	if next.News == nil {
		next.News = []domain.NewsItem{}
	}
	next.ByISO3 = make(map[string]domain.CountryRecord, len(next.Dataset))
	for _, rec := range next.Dataset {
		next.ByISO3[rec.ISO3] = rec
	}
	warnMixedIDs(next.Dataset)

	m := s.cache.Get(next.Version, next.Dataset)

	s.mu.Lock()
	s.snap = next
	s.selection = s.selection.Reconcile(m)
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("reload dataset: %w", err)
	}
	log.Info().Str("version", next.Version).Int("countries", len(next.Dataset)).Int("news", len(next.News)).Msg("dashboard snapshot replaced")
	return nil
}

// Snapshot returns the current generation.
func (s *DashboardService) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Metrics returns the aggregated metrics of the current snapshot.
func (s *DashboardService) Metrics() *metrics.AggregatedMetrics {
	snap := s.Snapshot()
	return s.cache.Get(snap.Version, snap.Dataset)
}

// Country looks up one record by ISO3 (case-insensitive).
func (s *DashboardService) Country(iso3 string) (domain.CountryRecord, error) {
	rec, ok := s.Snapshot().ByISO3[strings.ToUpper(strings.TrimSpace(iso3))]
	if !ok {
		return domain.CountryRecord{}, fmt.Errorf("%w: %s", domain.ErrCountryNotFound, iso3)
	}
	return rec, nil
}

// Regulator looks up one regulator summary by ID.
func (s *DashboardService) Regulator(id string) (metrics.RegulatorSummary, error) {
	reg, ok := s.Metrics().Regulators.Lookup(id)
	if !ok {
		return metrics.RegulatorSummary{}, fmt.Errorf("%w: %s", domain.ErrRegulatorMissing, id)
	}
	return reg, nil
}

// News returns the news list, filtered to iso3 when given. Items without a country are
// only part of the unfiltered list.
func (s *DashboardService) News(iso3 string) []domain.NewsItem {
	all := s.Snapshot().News
	iso3 = strings.ToUpper(strings.TrimSpace(iso3))
	if iso3 == "" {
		return all
	}
	out := []domain.NewsItem{}
	for _, n := range all {
		if n.CountryISO3 == iso3 {
			out = append(out, n)
		}
	}
	return out
}

// Categories lists the distinct inferred regulator categories of the dataset.
func (s *DashboardService) Categories() []string {
	return metrics.Categories(s.Snapshot().Dataset)
}

func (s *DashboardService) Selection() selection.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// SetSelection replaces the selection. The regulator is reconciled against the current
// metrics, so an unknown ID is dropped.
func (s *DashboardService) SetSelection(st selection.State) selection.State {
	st.Country = strings.ToUpper(strings.TrimSpace(st.Country))
	st.RegulatorID = strings.TrimSpace(st.RegulatorID)
	m := s.Metrics()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = st.Reconcile(m)
	return s.selection
}

// ToggleRegulator selects id or clears it when already selected.
func (s *DashboardService) ToggleRegulator(id string) (selection.State, error) {
	if _, err := s.Regulator(id); err != nil {
		return s.Selection(), err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = s.selection.ToggleRegulator(id)
	return s.selection, nil
}

// warnMixedIDs flags countries that combine explicit and derived regulator IDs. Adding
// an explicit ID later changes the ID of that regulator, which breaks stored references.
func warnMixedIDs(ds domain.Dataset) {
	for _, rec := range ds {
		explicit, derived := 0, 0
		for _, reg := range rec.Regulators {
			if strings.TrimSpace(reg.ID) != "" {
				explicit++
			} else {
				derived++
			}
		}
		if explicit > 0 && derived > 0 {
			log.Warn().Str("iso3", rec.ISO3).Int("explicit", explicit).Int("derived", derived).
				Msg("country mixes explicit and derived regulator ids")
		}
	}
}

// Status summarizes the snapshot for health checks.
func (s *DashboardService) Status() (version string, countries int, loadErr string) {
	snap := s.Snapshot()
	return snap.Version, len(snap.Dataset), snap.Error
}
