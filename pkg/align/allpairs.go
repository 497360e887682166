// 18 Oct 2026

package align

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// PairResult is one entry from AllPairs. I and J index the input, with I < J.
type PairResult struct {
	I, J  int
	Pair  Pair
	Score int // from Score() on the aligned pair
}

// AllPairs aligns every sequence against every later one. Results come
// back ordered by I, then J, whatever order the work was done in.
// Up to nWorker alignments run at once, each worker with its own Aligner.
// nWorker < 1 means one per CPU.
func AllPairs(ctx context.Context, seqs [][]byte, sc Scoring, nWorker int) ([]PairResult, error) {
	n := len(seqs)
	if n < 2 {
		return nil, nil
	}
	if nWorker < 1 {
		nWorker = runtime.NumCPU()
	}
	res := make([]PairResult, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			res = append(res, PairResult{I: i, J: j})
		}
	}

	jobs := make(chan *PairResult)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for k := range res {
			select {
			case jobs <- &res[k]:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < nWorker; w++ {
		g.Go(func() error {
			al := NewAligner(sc)
			for r := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				r.Pair, _ = al.Align(seqs[r.I], seqs[r.J])
				r.Score = Score(r.Pair, sc)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
