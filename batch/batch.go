// Package batch scores many (reference, distractor) pairs in parallel.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/revelaction/segfact/overlap"
	sent "github.com/revelaction/segfact/sentence"
	"golang.org/x/sync/errgroup"
)

// Pair is one input line of a batch.
type Pair struct {
	Id         string         `json:"id"`
	Reference  [][]sent.Token `json:"reference"`
	Distractor [][]sent.Token `json:"distractor"`
}

// Result is one output line of a batch. Exactly one of Report and Error is
// set.
type Result struct {
	Id     string          `json:"id"`
	Report *overlap.Report `json:"report,omitempty"`
	Error  string          `json:"error,omitempty"`

	// Sentence is the raw text of the sentence that failed, if any.
	Sentence string `json:"sentence,omitempty"`
}

type Options struct {
	// Workers is the number of pairs scored at the same time. Zero means
	// runtime.NumCPU().
	Workers int

	// Matches adds the literal overlapping sets to the reports.
	Matches bool

	// FailFast aborts the batch on the first failing pair instead of
	// recording the error in its Result.
	FailFast bool

	// Progress, if set, is called after every scored pair with the number
	// of pairs done. It is called from several goroutines.
	Progress func(done int)
}

// Run scores the pairs and returns the results in input order.
func Run(ctx context.Context, pairs []Pair, opts Options) ([]Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var done atomic.Int64
	for i, p := range pairs {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res, err := score(p, opts.Matches)
			if err != nil && opts.FailFast {
				return fmt.Errorf("pair %q: %w", p.Id, err)
			}
			results[i] = res

			if opts.Progress != nil {
				opts.Progress(int(done.Add(1)))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// score returns the Result of the pair. On error the Result records it.
func score(p Pair, withMatches bool) (Result, error) {
	res := Result{Id: p.Id}
	r, err := overlap.Compare(p.Reference, p.Distractor, withMatches)
	if err == nil {
		res.Report = &r
		return res, nil
	}

	res.Error = err.Error()
	var sErr *overlap.SentenceError
	if errors.As(err, &sErr) {
		res.Sentence = sErr.Text()
	}
	return res, err
}
