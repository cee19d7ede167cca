package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/graph"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/graph/export"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/layout"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/selection"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/theme"
)

// Drag phases accepted by LayoutService.Drag.
const (
	DragStart = "start"
	DragMove  = "move"
	DragEnd   = "end"
)

// LayoutOptions bounds the sessions a LayoutService keeps. Zero MaxWidth/MaxHeight,
// SessionTTL or MaxSessions disable that bound.
type LayoutOptions struct {
	Width, Height       float64
	MaxWidth, MaxHeight float64
	Interval            time.Duration
	SessionTTL          time.Duration
	MaxSessions         int
}

// CreateSessionRequest selects the graph a layout session lays out. Zero sizes take the
// configured defaults.
type CreateSessionRequest struct {
	Mode     domain.GraphMode `json:"mode"`
	Category string           `json:"category"`
	Width    float64          `json:"width"`
	Height   float64          `json:"height"`
}

// Session is one graph under simulation. The graph is fixed for the session's lifetime;
// a new mode, filter, size or dataset means a new session.
type Session struct {
	ID        string
	Version   string
	Graph     *graph.Graph
	Width     float64
	Height    float64
	CreatedAt time.Time

	runner     *layout.Runner
	lastAccess time.Time
}

// SessionView is the JSON shape of a session at one instant.
type SessionView struct {
	ID        string            `json:"id"`
	Version   string            `json:"version"`
	Stale     bool              `json:"stale"`
	Width     float64           `json:"width"`
	Height    float64           `json:"height"`
	Alpha     float64           `json:"alpha"`
	Running   bool              `json:"running"`
	Graph     *graph.Graph      `json:"graph"`
	Positions []layout.Position `json:"positions"`
	Highlight graph.Highlight   `json:"highlight"`
}

// HoverView is the transient highlight and tooltip of one node.
type HoverView struct {
	Highlight graph.Highlight `json:"highlight"`
	Tooltip   graph.Tooltip   `json:"tooltip"`
}

// LayoutService manages layout sessions. Each session owns a Runner ticking on its own
// goroutine; sessions are stopped on delete, on expiry, on eviction and on Close.
type LayoutService struct {
	dash *DashboardService
	opts LayoutOptions

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewLayoutService creates a new LayoutService. Runners are bound to ctx, not to the
// request that created them. With a SessionTTL, idle sessions are swept until ctx is
// cancelled or Close is called.
func NewLayoutService(ctx context.Context, dash *DashboardService, opts LayoutOptions) *LayoutService {
	ctx, cancel := context.WithCancel(ctx)
	s := &LayoutService{
		dash:     dash,
		opts:     opts,
		ctx:      ctx,
		cancel:   cancel,
		sessions: map[string]*Session{},
	}
	if opts.SessionTTL > 0 {
		go s.sweepLoop(opts.SessionTTL / 2)
	}
	return s
}

func (s *LayoutService) sweepLoop(every time.Duration) {
	if every < time.Second {
		every = time.Second
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.Sweep(now); n > 0 {
				log.Debug().Int("expired", n).Msg("layout sessions swept")
			}
		}
	}
}

// Sweep stops and forgets every session idle for longer than the TTL as of now. It
// returns the number of sessions removed.
func (s *LayoutService) Sweep(now time.Time) int {
	if s.opts.SessionTTL <= 0 {
		return 0
	}
	var expired []*Session
	s.mu.Lock()
	for id, sess := range s.sessions {
		if now.Sub(sess.lastAccess) > s.opts.SessionTTL {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()
	for _, sess := range expired {
		sess.runner.Stop()
	}
	return len(expired)
}

// canvas resolves the requested size against the defaults and bounds.
func (s *LayoutService) canvas(w, h float64) (float64, float64, error) {
	if math.IsNaN(w) || math.IsNaN(h) || w < 0 || h < 0 {
		return 0, 0, fmt.Errorf("%w: %gx%g", domain.ErrInvalidCanvas, w, h)
	}
	if w == 0 {
		w = s.opts.Width
	}
	if h == 0 {
		h = s.opts.Height
	}
	if (s.opts.MaxWidth > 0 && w > s.opts.MaxWidth) || (s.opts.MaxHeight > 0 && h > s.opts.MaxHeight) {
		return 0, 0, fmt.Errorf("%w: %gx%g exceeds %gx%g", domain.ErrInvalidCanvas, w, h, s.opts.MaxWidth, s.opts.MaxHeight)
	}
	return w, h, nil
}

// BuildGraph constructs the graph for the current snapshot and selection.
func (s *LayoutService) BuildGraph(mode domain.GraphMode, category string) *graph.Graph {
	snap := s.dash.Snapshot()
	sel := s.dash.Selection()
	if mode == "" {
		mode = selection.DefaultMode(sel.Country)
	}
	return graph.Build(graph.Input{
		Dataset:  snap.Dataset,
		Loading:  snap.Loading,
		LoadErr:  snap.Error,
		Mode:     mode,
		Country:  sel.Country,
		Category: category,
	})
}

// Create builds a graph, seeds a simulation and starts ticking it.
func (s *LayoutService) Create(req CreateSessionRequest) (*SessionView, error) {
	if req.Mode != "" && req.Mode != domain.ModeCountry && req.Mode != domain.ModeGlobal {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMode, req.Mode)
	}
	w, h, err := s.canvas(req.Width, req.Height)
	if err != nil {
		return nil, err
	}

	version := s.dash.Snapshot().Version
	g := s.BuildGraph(req.Mode, req.Category)
	sim, err := g.NewSimulation(w, h)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:        uuid.NewString(),
		Version:   version,
		Graph:     g,
		Width:     w,
		Height:    h,
		CreatedAt: time.Now().UTC(),
		runner:    layout.NewRunner(sim, s.opts.Interval),
	}
	sess.lastAccess = sess.CreatedAt
	if !g.Empty() {
		sess.runner.Start(s.ctx)
	}

	s.mu.Lock()
	evicted := s.evictLocked()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	if evicted != nil {
		evicted.runner.Stop()
		log.Debug().Str("session", evicted.ID).Msg("layout session evicted")
	}

	log.Debug().Str("session", sess.ID).Str("mode", string(g.Mode)).Int("nodes", len(g.Nodes)).Msg("layout session created")
	return s.view(sess), nil
}

// evictLocked removes the least recently used session when the store is full.
func (s *LayoutService) evictLocked() *Session {
	if s.opts.MaxSessions <= 0 || len(s.sessions) < s.opts.MaxSessions {
		return nil
	}
	var oldest *Session
	for _, sess := range s.sessions {
		if oldest == nil || sess.lastAccess.Before(oldest.lastAccess) {
			oldest = sess
		}
	}
	delete(s.sessions, oldest.ID)
	return oldest
}

func (s *LayoutService) get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	sess.lastAccess = time.Now().UTC()
	return sess, nil
}

// Get returns the current positions and selection highlight of a session.
func (s *LayoutService) Get(id string) (*SessionView, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *LayoutService) view(sess *Session) *SessionView {
	pos, alpha := sess.runner.Snapshot()
	return &SessionView{
		ID:        sess.ID,
		Version:   sess.Version,
		Stale:     sess.Version != s.dash.Snapshot().Version,
		Width:     sess.Width,
		Height:    sess.Height,
		Alpha:     alpha,
		Running:   sess.runner.Running(),
		Graph:     sess.Graph,
		Positions: pos,
		Highlight: sess.Graph.Selection(s.dash.Selection().RegulatorID),
	}
}

// Delete stops the session's runner and forgets it.
func (s *LayoutService) Delete(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	sess.runner.Stop()
	return nil
}

// Reset re-heats the simulation without rebuilding the graph.
func (s *LayoutService) Reset(id string) (*SessionView, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	_ = sess.runner.Do(func(sim *layout.Simulation) error {
		sim.Reheat()
		return nil
	})
	sess.runner.Restart()
	return s.view(sess), nil
}

// Drag applies one drag phase to node. Start pins and warms the simulation, move
// updates the pin, end releases it.
func (s *LayoutService) Drag(id, node, phase string, x, y float64) (*SessionView, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if !sess.Graph.Has(node) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNodeNotFound, node)
	}

	err = sess.runner.Do(func(sim *layout.Simulation) error {
		switch phase {
		case DragStart:
			return sim.DragStart(node)
		case DragMove:
			return sim.DragMove(node, x, y)
		case DragEnd:
			return sim.DragEnd(node)
		}
		return fmt.Errorf("unknown drag phase %q", phase)
	})
	if err != nil {
		return nil, err
	}
	if phase == DragStart {
		sess.runner.Restart()
	}
	return s.view(sess), nil
}

// Hover returns the dimmed/active sets and tooltip for node.
func (s *LayoutService) Hover(id, node string) (*HoverView, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	h, tip, err := sess.Graph.Hover(node)
	if err != nil {
		return nil, err
	}
	return &HoverView{Highlight: h, Tooltip: tip}, nil
}

// Scene captures a session for export with the given theme. It does not touch the
// simulation beyond copying positions.
func (s *LayoutService) Scene(id string, mode domain.ThemeMode) (export.Scene, error) {
	sess, err := s.get(id)
	if err != nil {
		return export.Scene{}, err
	}
	pos, _ := sess.runner.Snapshot()
	sel := s.dash.Selection()
	return export.Scene{
		Graph:     sess.Graph,
		Positions: pos,
		Width:     sess.Width,
		Height:    sess.Height,
		Highlight: sess.Graph.Selection(sel.RegulatorID),
		Tokens:    theme.TokensFor(mode),
		Country:   sel.Country,
	}, nil
}

// Len reports the number of live sessions.
func (s *LayoutService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops every session.
func (s *LayoutService) Close() {
	s.cancel()
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = map[string]*Session{}
	s.mu.Unlock()
	for _, sess := range sessions {
		sess.runner.Stop()
	}
}
