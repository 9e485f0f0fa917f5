package survey

import (
	"bytes"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Source is an uploaded file.
type Source struct {
	Name string
	Data []byte
}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	Synthetic SyntheticSpec
	// Seed for the synthetic generator; 0 picks a time-based seed per load.
	Seed   uint64
	Decode DecodeOptions
	Logger *zap.Logger
}

// LoadResult is the outcome of a load.
type LoadResult struct {
	Table  *Table
	Origin Origin
	// Seed used when the table is synthetic.
	Seed uint64
	// Fallback holds the *ParseError that caused a degrade to synthetic data.
	Fallback error
}

// Loader obtains a survey table from an upload or the synthetic generator.
type Loader struct {
	opt LoaderOptions
	log *zap.Logger
}

// NewLoader validates opt and returns a Loader.
func NewLoader(opt LoaderOptions) (*Loader, error) {
	if opt.Synthetic.Size == 0 && opt.Synthetic.Ranges == nil {
		opt.Synthetic = DefaultSyntheticSpec()
	}
	if err := opt.Synthetic.Validate(); err != nil {
		return nil, err
	}
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{opt: opt, log: log}, nil
}

// WithSeed returns a copy of l that generates synthetic data from seed.
func (l *Loader) WithSeed(seed uint64) *Loader {
	cp := *l
	cp.opt.Seed = seed
	return &cp
}

// Load decodes src, or generates synthetic data when src is nil. Unparsable
// input degrades to synthetic data and is reported in LoadResult.Fallback.
// Schema violations and empty tables are returned as errors.
func (l *Loader) Load(src *Source) (*LoadResult, error) {
	if src == nil {
		l.log.Info("no upload, using synthetic data")
		return l.synthetic(nil), nil
	}
	t, err := Decode(src.Name, bytes.NewReader(src.Data), l.opt.Decode)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			l.log.Warn("upload unreadable, falling back to synthetic data",
				zap.String("file", src.Name), zap.Error(err))
			return l.synthetic(pe), nil
		}
		l.log.Warn("upload rejected", zap.String("file", src.Name), zap.Error(err))
		return nil, err
	}
	l.log.Info("upload loaded", zap.String("file", src.Name), zap.Int("records", t.Len()))
	return &LoadResult{Table: t, Origin: OriginUploaded}, nil
}

func (l *Loader) synthetic(cause error) *LoadResult {
	seed := l.opt.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	t := Generate(NewRand(seed), l.opt.Synthetic)
	return &LoadResult{Table: t, Origin: OriginSimulated, Seed: seed, Fallback: cause}
}
