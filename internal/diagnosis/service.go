// Package diagnosis wires loading, aggregation and recommendation into one
// pass that produces a dashboard.
package diagnosis

import (
	"strconv"

	"github.com/KaramelBytes/didia-cli/internal/analysis"
	"github.com/KaramelBytes/didia-cli/internal/cache"
	"github.com/KaramelBytes/didia-cli/internal/recommend"
	"github.com/KaramelBytes/didia-cli/internal/report"
	"github.com/KaramelBytes/didia-cli/internal/survey"
	"go.uber.org/zap"
)

// Options configures a Service.
type Options struct {
	Theme      report.Theme
	Thresholds recommend.ThresholdSet
	Loader     survey.LoaderOptions
	// Memo caches loads by content hash; nil disables caching.
	Memo   *cache.Memo[*Prepared]
	Logger *zap.Logger
}

// Prepared is a loaded table and its snapshot.
type Prepared struct {
	Load     *survey.LoadResult
	Snapshot *analysis.Snapshot
}

// Service runs the pipeline for one input at a time; it keeps no per-input
// state beyond the optional memo.
type Service struct {
	loader *survey.Loader
	engine recommend.Engine
	theme  report.Theme
	memo   *cache.Memo[*Prepared]
	log    *zap.Logger
}

// New builds a Service.
func New(opt Options) (*Service, error) {
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	opt.Loader.Logger = log
	l, err := survey.NewLoader(opt.Loader)
	if err != nil {
		return nil, err
	}
	return &Service{
		loader: l,
		engine: recommend.NewEngine(opt.Thresholds, opt.Theme.Catalog),
		theme:  opt.Theme,
		memo:   opt.Memo,
		log:    log,
	}, nil
}

// Theme returns the report theme in use.
func (s *Service) Theme() report.Theme { return s.theme }

// Prepare loads src (nil for synthetic data) and aggregates it.
func (s *Service) Prepare(src *survey.Source, seed uint64) (*Prepared, error) {
	run := func() (*Prepared, error) {
		res, err := s.load(src, seed)
		if err != nil {
			return nil, err
		}
		snap, err := analysis.Aggregate(res.Table)
		if err != nil {
			return nil, err
		}
		return &Prepared{Load: res, Snapshot: snap}, nil
	}
	key, ok := s.memoKey(src, seed)
	if !ok {
		return run()
	}
	return s.memo.Do(key, run)
}

// Run prepares src and builds a dashboard. The recommendation is attached
// only when diagnose is set.
func (s *Service) Run(src *survey.Source, seed uint64, diagnose bool) (*report.Dashboard, error) {
	p, err := s.Prepare(src, seed)
	if err != nil {
		return nil, err
	}
	in := report.Input{
		Snapshot: p.Snapshot,
		Origin:   p.Load.Origin,
		Fallback: p.Load.Fallback,
		Seed:     p.Load.Seed,
	}
	if diagnose {
		m := p.Snapshot.Means
		rec := s.engine.Recommend(m.Austerity, m.Reticence, m.MandatedUse)
		in.Recommendation = &rec
		s.log.Info("diagnosis generated",
			zap.String("category", rec.Category.String()),
			zap.String("thresholds", rec.Thresholds.String()),
			zap.Int("records", p.Snapshot.Records))
	}
	return report.Build(in, s.theme), nil
}

// Template returns the CSV template of the synthetic table for seed.
func (s *Service) Template(seed uint64) ([]byte, error) {
	p, err := s.Prepare(nil, seed)
	if err != nil {
		return nil, err
	}
	return survey.TemplateCSV(p.Load.Table)
}

func (s *Service) load(src *survey.Source, seed uint64) (*survey.LoadResult, error) {
	if seed == 0 {
		return s.loader.Load(src)
	}
	return s.loader.WithSeed(seed).Load(src)
}

// memoKey is false when the result would not be reproducible.
func (s *Service) memoKey(src *survey.Source, seed uint64) (string, bool) {
	if s.memo == nil {
		return "", false
	}
	if src != nil {
		// uploads that fall back to synthetic data depend on the seed too
		return cache.Key([]byte("upload"), src.Data, []byte(strconv.FormatUint(seed, 10))), true
	}
	if seed == 0 {
		return "", false
	}
	return cache.Key([]byte("synthetic"), []byte(strconv.FormatUint(seed, 10))), true
}
