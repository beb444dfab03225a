// Package batch segments many pages concurrently. Each page is segmented
// synchronously by one worker; the Segmenter is shared read-only.
package batch

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/pageseg/layout"
	"github.com/tsawler/pageseg/model"
)

// ErrPageTimeout marks a page whose segmentation took longer than
// Options.PageTimeout. The region tree is still returned.
var ErrPageTimeout = errors.New("page segmentation exceeded timeout")

// maxDefaultWorkers caps the worker count chosen when Options.Workers is 0
const maxDefaultWorkers = 8

// Options configures batch segmentation
type Options struct {
	// Number of concurrent workers (0 = NumCPU, capped at 8)
	Workers int

	// PageTimeout flags pages that take longer than this (0 = no limit).
	// Segmentation of a page is never interrupted.
	PageTimeout time.Duration

	// Logger receives per-page diagnostics (nil = no logging)
	Logger *zap.Logger
}

// Result contains the outcome of segmenting a single page
type Result struct {
	PageNumber int
	Root       *layout.Region
	Err        error
	Elapsed    time.Duration
}

// Process segments pages with a bounded pool of workers and returns one
// result per page, in input order. Cancellation of ctx is observed between
// pages: pages not yet started when ctx ends report ctx.Err().
func Process(ctx context.Context, seg *layout.Segmenter, pages []*model.Page, opts Options) []Result {
	if ctx == nil {
		ctx = context.Background()
	}
	if seg == nil {
		seg = layout.NewSegmenter()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers > maxDefaultWorkers {
			workers = maxDefaultWorkers
		}
	}

	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))
	logger.Info("batch started", zap.Int("pages", len(pages)), zap.Int("workers", workers))

	results := make([]Result, len(pages))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, page := range pages {
		i, page := i, page
		g.Go(func() error {
			results[i] = processPage(ctx, seg, page, opts.PageTimeout, logger)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	logger.Info("batch finished", zap.Int("pages", len(pages)), zap.Int("failed", failed))
	return results
}

func processPage(ctx context.Context, seg *layout.Segmenter, page *model.Page, timeout time.Duration, logger *zap.Logger) Result {
	res := Result{}
	if page != nil {
		res.PageNumber = page.Number
	}
	if err := ctx.Err(); err != nil {
		res.Err = errors.Wrapf(err, "page %d not segmented", res.PageNumber)
		return res
	}

	start := time.Now()
	root, err := seg.Segment(page)
	res.Elapsed = time.Since(start)
	res.Root = root
	if err != nil {
		res.Err = errors.WithMessagef(err, "segment page %d", res.PageNumber)
		logger.Warn("page failed", zap.Int("page", res.PageNumber), zap.Error(err))
		return res
	}
	if timeout > 0 && res.Elapsed > timeout {
		res.Err = errors.Wrapf(ErrPageTimeout, "page %d took %s", res.PageNumber, res.Elapsed)
		logger.Warn("page exceeded timeout",
			zap.Int("page", res.PageNumber),
			zap.Duration("elapsed", res.Elapsed),
			zap.Duration("timeout", timeout))
		return res
	}
	logger.Debug("page segmented",
		zap.Int("page", res.PageNumber),
		zap.Int("regions", countRegions(root)),
		zap.Duration("elapsed", res.Elapsed))
	return res
}

func countRegions(root *layout.Region) int {
	n := 0
	root.Walk(func(*layout.Region) bool {
		n++
		return true
	})
	return n
}
