package pathsimp

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Stats summarizes a simplification run.
type Stats struct {
	Subpaths int
	// SkippedSubpaths counts invalid subpaths that were copied unchanged
	// because of [Options.SkipInvalid].
	SkippedSubpaths int
	InputCommands   int
	OutputCommands  int
	// Chunks counts the chunks that were candidates for merging.
	Chunks int
	// MergedChunks counts the chunks that were replaced by a single cubic.
	MergedChunks int
}

type subpathResult struct {
	els     []PathElement
	chunks  int
	merged  int
	skipped bool
}

// Simplify simplifies every subpath of path independently and returns the
// concatenation of the results, in order.
//
// It fails with [ErrEmptyPath] for an empty path and with [ErrInvalidConfig]
// for invalid options. Subpaths that fail to annotate cause Simplify to fail
// unless opts.SkipInvalid is set, in which case they are copied unchanged.
func Simplify(path BezPath, opts Options) (BezPath, error) {
	out, _, err := SimplifyWithStats(path, opts)
	return out, err
}

// SimplifyWithStats is like [Simplify] but also returns statistics about the
// run.
func SimplifyWithStats(path BezPath, opts Options) (BezPath, Stats, error) {
	if len(path) == 0 {
		return nil, Stats{}, ErrEmptyPath
	}
	if err := opts.Validate(); err != nil {
		return nil, Stats{}, err
	}
	subpaths, err := path.subpaths()
	if err != nil {
		return nil, Stats{}, err
	}

	results := make([]subpathResult, len(subpaths))
	limit := opts.Concurrency
	if limit == 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(limit)
	for i, sp := range subpaths {
		g.Go(func() error {
			res, err := simplifySubpath(sp.els, i, opts)
			if err != nil {
				if opts.SkipInvalid && (errors.Is(err, ErrEmptyPath) || errors.Is(err, ErrInvalidCommand)) {
					Logger().Warn("copying invalid subpath unchanged", "subpath", i, "err", err)
					res = subpathResult{els: sp.els, skipped: true}
				} else {
					return fmt.Errorf("subpath %d: %w", i, err)
				}
			}
			if sp.implicit {
				// The MoveTo passes through as the first chunk.
				res.els = res.els[1:]
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{
		Subpaths:      len(subpaths),
		InputCommands: len(path),
	}
	var out BezPath
	for _, res := range results {
		out = append(out, res.els...)
		stats.Chunks += res.chunks
		stats.MergedChunks += res.merged
		if res.skipped {
			stats.SkippedSubpaths++
		}
	}
	stats.OutputCommands = len(out)
	return out, stats, nil
}

// SimplifySubpath simplifies a single subpath. els must begin with its only
// MoveTo.
func SimplifySubpath(els []PathElement, opts Options) ([]PathElement, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	res, err := simplifySubpath(els, 0, opts)
	if err != nil {
		return nil, err
	}
	return res.els, nil
}

func simplifySubpath(els []PathElement, index int, opts Options) (subpathResult, error) {
	sp, err := Annotate(els, opts)
	if err != nil {
		return subpathResult{}, err
	}
	var res subpathResult
	res.els = make([]PathElement, 0, len(els))
	for _, ch := range chunks(sp, index) {
		out, merged := simplifyChunk(ch, opts)
		if !ch.Passthrough {
			res.chunks++
		}
		if merged {
			res.merged++
		}
		res.els = append(res.els, out...)
	}
	Logger().Debug("simplified subpath",
		"subpath", index,
		"chunks", res.chunks,
		"merged", res.merged,
		"in", len(els),
		"out", len(res.els))
	return res, nil
}
