package cmd

import (
	"github.com/KaramelBytes/didia-cli/internal/cache"
	"github.com/KaramelBytes/didia-cli/internal/diagnosis"
	"github.com/KaramelBytes/didia-cli/internal/recommend"
	"github.com/KaramelBytes/didia-cli/internal/report"
	"github.com/KaramelBytes/didia-cli/internal/survey"
)

// serviceFlags override the configured theme and threshold set when non-empty.
type serviceFlags struct {
	theme      string
	thresholds string
	delimiter  rune
	memo       bool
}

func buildService(f serviceFlags) (*diagnosis.Service, error) {
	themeName, tsName := cfg.Theme, cfg.ThresholdSet
	if f.theme != "" {
		themeName = f.theme
	}
	if f.thresholds != "" {
		tsName = f.thresholds
	}
	th, err := report.ThemeByName(themeName)
	if err != nil {
		return nil, err
	}
	ts, err := recommend.ThresholdSetByName(tsName)
	if err != nil {
		return nil, err
	}
	spec := survey.DefaultSyntheticSpec()
	spec.Size = cfg.SyntheticSize

	opt := diagnosis.Options{
		Theme:      th,
		Thresholds: ts,
		Loader: survey.LoaderOptions{
			Synthetic: spec,
			Seed:      cfg.SyntheticSeed,
			Decode:    survey.DecodeOptions{Delimiter: f.delimiter},
		},
		Logger: logger,
	}
	if f.memo && cfg.MemoEntries > 0 {
		opt.Memo = cache.NewMemo[*diagnosis.Prepared](cfg.MemoEntries)
	}
	return diagnosis.New(opt)
}
