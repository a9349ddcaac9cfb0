// SPDX-License-Identifier: MIT
package perlscan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"gitlab.com/fisherprime/perlscan/lexer"
)

type (
	// Config defines configuration options for an Analyzer's
	// operations.
	Config struct {
		Logger logrus.FieldLogger
		Debug  bool

		// Strictness selects the ignore set applied before comparison.
		Strictness Strictness

		// Workers caps concurrent file analyses.
		Workers int

		Canonicalizer Canonicalizer
	}

	// Analyzer scores files against their canonicalized renditions.
	Analyzer struct {
		cfg *Config
	}

	// Report captures one file's analysis.
	Report struct {
		Path string

		Result

		// Warnings counts scan defects across both token streams.
		Warnings int

		// Skipped marks input with nothing to compare.
		Skipped bool

		Err error
	}
)

// ErrNoTokens indicates input yielding nothing beyond the end-of-input
// marker.
var ErrNoTokens = errors.New("no tokens to analyze")

// DefaultConfig configures the Analyzer's Config.
func DefaultConfig() *Config {
	return &Config{
		Logger:        fLogger,
		Workers:       runtime.NumCPU(),
		Canonicalizer: DefaultCanonicalizer(),
	}
}

// Validate populates missing Config entries with defaults & clamps the
// Strictness level.
func (c *Config) Validate() {
	if c.Logger == nil {
		c.Logger = fLogger
	}
	if c.Workers < 1 {
		c.Workers = runtime.NumCPU()
	}
	if c.Canonicalizer == nil {
		c.Canonicalizer = DefaultCanonicalizer()
	}
	c.Strictness = c.Strictness.Clamp()
}

// NewAnalyzer instantiates an Analyzer.
func NewAnalyzer(cfg *Config) *Analyzer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.Validate()

	return &Analyzer{cfg: cfg}
}

// Source scores source, labeled by path in the Report, against its
// canonicalized rendition.
func (a *Analyzer) Source(ctx context.Context, path, source string) (r Report) {
	r.Path = path

	original, warns := lexer.Tokenize(ctx, source)
	r.Warnings = len(warns)
	a.debugWarnings(path, warns)

	if original.Len() <= 1 {
		// Nothing beyond the end-of-input marker.
		r.Skipped, r.Err = true, ErrNoTokens
		return
	}

	canonical, err := a.cfg.Canonicalizer.Canonicalize(ctx, source)
	if err != nil {
		r.Err = err
		return
	}

	deparsed, warns := lexer.Tokenize(ctx, canonical)
	r.Warnings += len(warns)
	a.debugWarnings(path+" (canonical)", warns)

	if deparsed.Len() <= 1 {
		r.Skipped, r.Err = true, ErrNoTokens
		return
	}

	r.Result = Compare(original, deparsed, a.cfg.Strictness)

	if a.cfg.Debug {
		ignore := a.cfg.Strictness.IgnoreSet()
		a.cfg.Logger.Debugf("%s kind counts: %s", path, spew.Sprint(Counts(original, ignore)))
	}

	return
}

// File reads & scores one file.
func (a *Analyzer) File(ctx context.Context, path string) (r Report) {
	content, err := os.ReadFile(path)
	if err != nil {
		r.Path, r.Err = path, err
		return
	}

	return a.Source(ctx, path, string(content))
}

// Files scores paths concurrently on an ants worker pool, returning
// reports in path order.
//
// A pool failure surfaces through err beside the reports gathered so
// far.
func (a *Analyzer) Files(ctx context.Context, paths []string) (reports []Report, err error) {
	reports = make([]Report, 0, len(paths))

	var (
		mutex sync.Mutex
		wg    sync.WaitGroup
	)

	pool, err := ants.NewPoolWithFunc(a.cfg.Workers, func(arg interface{}) {
		defer wg.Done()

		path, ok := arg.(string)
		if !ok {
			return
		}

		r := a.File(ctx, path)

		mutex.Lock()
		reports = append(reports, r)
		mutex.Unlock()
	})
	if err != nil {
		err = fmt.Errorf("analysis pool: %w", err)
		return
	}
	defer pool.Release()

	for _, path := range paths {
		wg.Add(1)
		if err = pool.Invoke(path); err != nil {
			wg.Done()
			err = fmt.Errorf("analysis pool: %w", err)

			break
		}
	}
	wg.Wait()

	slices.SortFunc(reports, func(a, b Report) int { return strings.Compare(a.Path, b.Path) })

	return
}

// debugWarnings dumps scan warnings under debug.
func (a *Analyzer) debugWarnings(label string, warns []lexer.Warning) {
	if !a.cfg.Debug || len(warns) < 1 {
		return
	}

	a.cfg.Logger.Debugf("%s scan warnings: %s", label, spew.Sprint(warns))
}

// String is the `fmt.Stringer` interface implementation for Report.
func (r Report) String() string {
	switch {
	case r.Skipped:
		return fmt.Sprintf("%s: skipped: %v", r.Path, r.Err)
	case r.Err != nil:
		return fmt.Sprintf("%s: error: %v", r.Path, r.Err)
	default:
		return fmt.Sprintf("%s: score %.3f (common %d, tokens %d/%d, warnings %d)",
			r.Path, r.Score, r.Common, r.LenA, r.LenB, r.Warnings)
	}
}
