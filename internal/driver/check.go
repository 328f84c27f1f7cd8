package driver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"pycheck/internal/diag"
	"pycheck/internal/leakcheck"
	"pycheck/internal/parser"
	"pycheck/internal/resolver"
	"pycheck/internal/source"
)

// perFileCap bounds the diagnostics kept for a single file before merging.
const perFileCap = 500

// Check analyzes every path and returns the merged, sorted, deduplicated
// bag. Files are loaded serially (the file set is not safe for concurrent
// writes) and analyzed in parallel.
func (d *Driver) Check(ctx context.Context, paths []string) (*diag.Bag, error) {
	for _, p := range paths {
		d.emit(Event{File: p, Status: StatusQueued})
	}

	phase := d.beginPhase("load")
	ids := make([]source.FileID, len(paths))
	for i, p := range paths {
		id, err := d.fs.Load(p)
		if err != nil {
			d.endPhase(phase, "")
			d.emit(Event{File: p, Stage: StageLoad, Status: StatusError})
			return nil, fmt.Errorf("load %s: %w", p, err)
		}
		ids[i] = id
	}
	d.endPhase(phase, fmt.Sprintf("%d files", len(paths)))

	phase = d.beginPhase("analyze")
	results := make([][]diag.Diagnostic, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.jobs())
	for i := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = d.checkFile(ids[i], paths[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		d.endPhase(phase, "")
		return nil, err
	}
	d.endPhase(phase, "")

	phase = d.beginPhase("merge")
	bag := diag.NewBag(d.maxDiagnostics())
	for _, diags := range results {
		for _, dg := range diags {
			bag.Add(dg)
		}
	}
	bag.Sort()
	bag.Dedup()
	d.endPhase(phase, fmt.Sprintf("%d diagnostics", bag.Len()))
	d.emit(Event{Stage: StageAnalyze, Status: StatusDone})
	return bag, nil
}

// checkFile runs the pipeline for one already-loaded file. All failures
// surface as diagnostics; a file never aborts the run after loading.
func (d *Driver) checkFile(id source.FileID, path string) []diag.Diagnostic {
	f := d.fs.Get(id)

	var key cacheKey
	if d.cache != nil {
		key = d.cache.key(f.Content, d.fingerprint())
		if diags, ok := d.cache.load(key, id); ok {
			d.emit(Event{File: path, Stage: StageAnalyze, Status: StatusCached})
			return diags
		}
	}

	d.emit(Event{File: path, Stage: StageParse, Status: StatusWorking})
	fileBag := diag.NewBag(perFileCap)
	res := parser.ParseFile(d.fs, id, parser.Options{Reporter: diag.BagReporter{Bag: fileBag}})

	ignores := buildIgnoreSet(res.Directives, d.opts.IgnoreCodes, f)
	mode := ignores.Mode(d.opts.Mode)

	d.emit(Event{File: path, Stage: StageAnalyze, Status: StatusWorking})
	if res.Module != nil {
		checker := leakcheck.NewChecker(resolver.NewModuleResolver(res.Module), resolver.SyntacticScopes{})
		checker.CheckModule(res.Module, fileBag)
	}

	fileBag.Filter(func(dg diag.Diagnostic) bool {
		return !diag.Suppressed(dg, mode, ignores, f)
	})
	fileBag.Sort()
	fileBag.Dedup()

	if d.cache != nil {
		d.cache.store(key, fileBag.Items())
	}
	status := StatusDone
	if fileBag.HasErrors() {
		status = StatusError
	}
	d.emit(Event{File: path, Stage: StageAnalyze, Status: status})
	return fileBag.Items()
}
