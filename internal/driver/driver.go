// Package driver runs the per-file analysis pipeline: load, parse, resolve
// and check, with suppression and a result cache on top.
package driver

import (
	"fmt"
	"runtime"
	"sort"
	"strings"

	"pycheck/internal/diag"
	"pycheck/internal/observ"
	"pycheck/internal/source"
)

// DefaultMaxDiagnostics caps a run when the manifest does not say otherwise.
const DefaultMaxDiagnostics = 1000

type Options struct {
	// Mode is the project-wide suppression mode; file directives override it.
	Mode diag.Mode
	// IgnoreCodes are suppressed in every file.
	IgnoreCodes []diag.Code
	// Jobs caps analysis parallelism; 0 means one worker per CPU.
	Jobs int
	// MaxDiagnostics caps the merged bag; 0 means DefaultMaxDiagnostics.
	MaxDiagnostics int
	// CacheDir enables the on-disk result cache when non-empty.
	CacheDir string
	// Timer, when set, records phase durations.
	Timer *observ.Timer
	// Events, when set, receives per-file progress. The driver never closes
	// the channel.
	Events chan<- Event
}

type Driver struct {
	fs    *source.FileSet
	opts  Options
	cache *resultCache
}

func New(fs *source.FileSet, opts Options) *Driver {
	d := &Driver{fs: fs, opts: opts}
	if opts.CacheDir != "" {
		d.cache = newResultCache(opts.CacheDir)
	}
	return d
}

func (d *Driver) jobs() int {
	if d.opts.Jobs > 0 {
		return d.opts.Jobs
	}
	return runtime.NumCPU()
}

func (d *Driver) maxDiagnostics() int {
	if d.opts.MaxDiagnostics > 0 {
		return d.opts.MaxDiagnostics
	}
	return DefaultMaxDiagnostics
}

// fingerprint folds the suppression configuration into the cache key: a
// cached result is only valid under the exact mode and ignore list that
// produced it.
func (d *Driver) fingerprint() string {
	codes := make([]int, 0, len(d.opts.IgnoreCodes))
	for _, c := range d.opts.IgnoreCodes {
		codes = append(codes, int(c))
	}
	sort.Ints(codes)
	parts := make([]string, 0, len(codes)+1)
	parts = append(parts, "mode="+d.opts.Mode.String())
	for _, c := range codes {
		parts = append(parts, fmt.Sprintf("ignore=%d", c))
	}
	return strings.Join(parts, ";")
}

func (d *Driver) beginPhase(name string) int {
	if d.opts.Timer == nil {
		return -1
	}
	return d.opts.Timer.Begin(name)
}

func (d *Driver) endPhase(idx int, note string) {
	if d.opts.Timer != nil {
		d.opts.Timer.End(idx, note)
	}
}
