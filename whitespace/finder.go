package whitespace

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tsawler/pageseg/model"
	"github.com/tsawler/pageseg/spatial"
)

// adjacencyTolerance is how far, in points, a candidate may sit from the
// region edge or from accepted whitespace and still count as touching it.
const adjacencyTolerance = 0.5

// Source is the content a search runs against. *spatial.Index satisfies it.
type Source interface {
	ItemsIntersecting(rect model.BBox) []*model.Item
	ItemsSurrounding(rect model.BBox, margin float64, dir spatial.Direction) []*model.Item
}

// Config holds configuration for whitespace discovery
type Config struct {
	// MaxRects is the number of rectangles wanted (default: 20)
	MaxRects int

	// MinWidth is the narrowest candidate kept, in points (default: 1 glyph)
	MinWidth float64

	// MinHeight is the shortest candidate kept, in points (default: 2 glyphs)
	MinHeight float64

	// MaxTouchingObstacles is the most content items an "empty" candidate
	// may overlap (default: 3)
	MaxTouchingObstacles int

	// ObstacleOverlapRatio is the largest share of an obstacle's own area
	// that may lie inside an empty candidate (default: 0.3)
	ObstacleOverlapRatio float64

	// CandidateOverlapRatio is the largest share of the candidate's area a
	// single obstacle may cover (default: 0.4)
	CandidateOverlapRatio float64

	// OverlapTolerance is the largest overlap ratio allowed between two
	// accepted rectangles (default: 0.05)
	OverlapTolerance float64

	// MaxQueueSize caps the candidate queue (default: 10000)
	MaxQueueSize int

	// MaxIterations caps the number of candidates examined (default: 50000)
	MaxIterations int
}

// DefaultConfig returns sensible defaults for content whose average glyph
// size is glyphSize points.
func DefaultConfig(glyphSize float64) Config {
	if glyphSize <= 0 || math.IsNaN(glyphSize) || math.IsInf(glyphSize, 0) {
		glyphSize = 10
	}
	return Config{
		MaxRects:              20,
		MinWidth:              glyphSize,
		MinHeight:             2 * glyphSize,
		MaxTouchingObstacles:  3,
		ObstacleOverlapRatio:  0.3,
		CandidateOverlapRatio: 0.4,
		OverlapTolerance:      0.05,
		MaxQueueSize:          10000,
		MaxIterations:         50000,
	}
}

// Validate reports the first setting that would make a search meaningless.
func (c Config) Validate() error {
	switch {
	case c.MaxRects < 1:
		return errors.Errorf("whitespace: max rects must be at least 1, got %d", c.MaxRects)
	case c.MinWidth <= 0 || c.MinHeight <= 0:
		return errors.Errorf("whitespace: minimum size must be positive, got %gx%g", c.MinWidth, c.MinHeight)
	case c.MaxTouchingObstacles < 0:
		return errors.Errorf("whitespace: max touching obstacles must not be negative, got %d", c.MaxTouchingObstacles)
	case c.ObstacleOverlapRatio < 0 || c.ObstacleOverlapRatio > 1:
		return errors.Errorf("whitespace: obstacle overlap ratio must be in [0,1], got %g", c.ObstacleOverlapRatio)
	case c.CandidateOverlapRatio < 0 || c.CandidateOverlapRatio > 1:
		return errors.Errorf("whitespace: candidate overlap ratio must be in [0,1], got %g", c.CandidateOverlapRatio)
	case c.OverlapTolerance < 0 || c.OverlapTolerance > 1:
		return errors.Errorf("whitespace: overlap tolerance must be in [0,1], got %g", c.OverlapTolerance)
	case c.MaxQueueSize < 1 || c.MaxIterations < 1:
		return errors.Errorf("whitespace: search limits must be positive, got queue=%d iterations=%d",
			c.MaxQueueSize, c.MaxIterations)
	}
	return nil
}

// Option configures a Finder
type Option func(*Finder)

// WithLogger sets the logger used for search diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(f *Finder) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithFilters appends acceptance filters run after the adjacency test
func WithFilters(filters ...Filter) Option {
	return func(f *Finder) {
		f.filters = append(f.filters, filters...)
	}
}

// Finder discovers maximal, approximately empty rectangles in a region.
// A Finder holds no per-search state and may be shared between goroutines.
type Finder struct {
	config  Config
	filters []Filter
	logger  *zap.Logger
}

// NewFinder creates a finder with the given configuration
func NewFinder(cfg Config, opts ...Option) *Finder {
	f := &Finder{
		config: cfg,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Config returns the finder configuration
func (f *Finder) Config() Config {
	return f.config
}

// Result is the outcome of one search
type Result struct {
	// Rects are the accepted rectangles in discovery order
	Rects []model.Whitespace

	// Partial is set when a safety limit stopped the search early
	Partial bool

	// Iterations is the number of candidates examined
	Iterations int
}

// Find searches region for whitespace, treating every item src reports
// inside region as an obstacle. It never fails: a search stopped by a safety
// limit returns what it found with Partial set.
func (f *Finder) Find(region model.BBox, src Source) Result {
	s := newSearch(f.config, region, src, f.filters)
	for !s.step() {
	}
	if s.partial {
		f.logger.Warn("whitespace search budget exceeded",
			zap.Stringer("region", region),
			zap.String("limit", s.limit),
			zap.Int("iterations", s.iterations),
			zap.Int("found", len(s.accepted)))
	} else {
		f.logger.Debug("whitespace search finished",
			zap.Stringer("region", region),
			zap.Int("iterations", s.iterations),
			zap.Int("found", len(s.accepted)))
	}
	return Result{
		Rects:      s.accepted,
		Partial:    s.partial,
		Iterations: s.iterations,
	}
}

// search is the state of one whitespace search. Each call to step examines
// one candidate and touches nothing outside the search value.
type search struct {
	cfg     Config
	region  model.BBox
	src     Source
	filters []Filter

	queue    entryQueue
	accepted []model.Whitespace
	pending  []*entry

	seq        int
	iterations int
	partial    bool
	limit      string
}

func newSearch(cfg Config, region model.BBox, src Source, filters []Filter) *search {
	s := &search{
		cfg:     cfg,
		region:  region,
		src:     src,
		filters: filters,
	}
	if !region.IsValid() || region.Width < cfg.MinWidth || region.Height < cfg.MinHeight {
		return s
	}
	var obstacles []obstacle
	for _, it := range src.ItemsIntersecting(region) {
		obstacles = append(obstacles, obstacle{rect: it.BBox})
	}
	s.push(region, obstacles, 0)
	return s
}

// step examines the best queued candidate and reports whether the search is
// finished.
func (s *search) step() bool {
	if s.done() {
		return true
	}
	if s.iterations >= s.cfg.MaxIterations {
		s.partial = true
		s.limit = "iterations"
		return true
	}
	s.iterations++

	e := s.queue.pop()
	s.refresh(e)
	if !s.isEmpty(e) {
		s.split(e)
		return s.done()
	}
	if s.acceptable(e) {
		s.accept(e)
		s.recheckPending()
	} else {
		s.pending = append(s.pending, e)
	}
	return s.done()
}

func (s *search) done() bool {
	return s.partial || len(s.accepted) >= s.cfg.MaxRects || s.queue.Len() == 0
}

func (s *search) push(rect model.BBox, obstacles []obstacle, seen int) {
	if s.queue.Len() >= s.cfg.MaxQueueSize {
		s.partial = true
		s.limit = "queue"
		return
	}
	s.seq++
	s.queue.push(&entry{
		rect:       rect,
		obstacles:  obstacles,
		generation: len(s.accepted),
		seen:       seen,
		quality:    quality(rect),
		seq:        s.seq,
	})
}

// refresh adds the whitespace accepted since e last looked to its obstacles.
func (s *search) refresh(e *entry) {
	if e.seen >= len(s.accepted) {
		return
	}
	for _, ws := range s.accepted[e.seen:] {
		if ws.BBox.Intersects(e.rect) {
			e.obstacles = append(e.obstacles, obstacle{rect: ws.BBox, whitespace: true})
		}
	}
	e.seen = len(s.accepted)
}

// isEmpty reports whether e overlaps its obstacles little enough to count
// as whitespace.
func (s *search) isEmpty(e *entry) bool {
	content := 0
	for _, o := range e.obstacles {
		if o.whitespace {
			if o.rect.OverlapRatio(e.rect) > s.cfg.OverlapTolerance {
				return false
			}
			continue
		}
		content++
		if content > s.cfg.MaxTouchingObstacles {
			return false
		}
		overlap := o.rect.OverlapArea(e.rect)
		if overlap > s.cfg.ObstacleOverlapRatio*o.rect.Area() ||
			overlap > s.cfg.CandidateOverlapRatio*e.rect.Area() {
			return false
		}
	}
	return true
}

// acceptable runs the adjacency test and the caller's filters.
func (s *search) acceptable(e *entry) bool {
	if !s.adjacent(e.rect) {
		return false
	}
	for _, f := range s.filters {
		if !f(e.rect, s.src) {
			return false
		}
	}
	return true
}

// adjacent reports whether rect touches the region edge or accepted
// whitespace, keeping the accepted set a connected lattice.
func (s *search) adjacent(rect model.BBox) bool {
	r := s.region
	if math.Abs(rect.Left()-r.Left()) <= adjacencyTolerance ||
		math.Abs(rect.Right()-r.Right()) <= adjacencyTolerance ||
		math.Abs(rect.Top()-r.Top()) <= adjacencyTolerance ||
		math.Abs(rect.Bottom()-r.Bottom()) <= adjacencyTolerance {
		return true
	}
	for _, ws := range s.accepted {
		if ws.BBox.Touches(rect, adjacencyTolerance) {
			return true
		}
	}
	return false
}

func (s *search) accept(e *entry) {
	s.accepted = append(s.accepted, model.Whitespace{
		BBox:       e.rect,
		Quality:    e.quality,
		Generation: e.generation,
	})
}

// recheckPending retries deferred candidates until an acceptance round
// changes nothing. Candidates that stopped being empty go back to the queue
// to be split.
func (s *search) recheckPending() {
	for changed := true; changed && len(s.accepted) < s.cfg.MaxRects; {
		changed = false
		kept := s.pending[:0]
		for _, e := range s.pending {
			if len(s.accepted) >= s.cfg.MaxRects {
				kept = append(kept, e)
				continue
			}
			s.refresh(e)
			switch {
			case !s.isEmpty(e):
				s.push(e.rect, e.obstacles, e.seen)
			case s.acceptable(e):
				s.accept(e)
				changed = true
			default:
				kept = append(kept, e)
			}
		}
		for i := len(kept); i < len(s.pending); i++ {
			s.pending[i] = nil
		}
		s.pending = kept
	}
}

// split divides e around the obstacle nearest its centre into the parts
// left of, right of, above and below that obstacle.
func (s *search) split(e *entry) {
	p := pivot(e)
	pr := e.obstacles[p].rect
	r := e.rect

	var parts []model.BBox
	if pr.Left() > r.Left() {
		parts = append(parts, model.NewBBoxFromEdges(r.Left(), r.Top(), pr.Left(), r.Bottom()))
	}
	if pr.Right() < r.Right() {
		parts = append(parts, model.NewBBoxFromEdges(pr.Right(), r.Top(), r.Right(), r.Bottom()))
	}
	if pr.Top() > r.Top() {
		parts = append(parts, model.NewBBoxFromEdges(r.Left(), r.Top(), r.Right(), pr.Top()))
	}
	if pr.Bottom() < r.Bottom() {
		parts = append(parts, model.NewBBoxFromEdges(r.Left(), pr.Bottom(), r.Right(), r.Bottom()))
	}

	for _, part := range parts {
		if part.Width < s.cfg.MinWidth || part.Height < s.cfg.MinHeight {
			continue
		}
		var obstacles []obstacle
		for i, o := range e.obstacles {
			if i != p && o.rect.Intersects(part) {
				obstacles = append(obstacles, o)
			}
		}
		s.push(part, obstacles, e.seen)
	}
}

// pivot returns the index of the obstacle whose centre is nearest the centre
// of e. Ties keep the earlier obstacle.
func pivot(e *entry) int {
	if len(e.obstacles) == 1 {
		return 0
	}
	c := e.rect.Center()
	best, bestDist := 0, math.Inf(1)
	for i, o := range e.obstacles {
		if d := o.rect.Center().Distance(c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
