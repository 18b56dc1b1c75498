package fetch

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of one URL in a batch fetch.
type BatchResult struct {
	URL         string
	Description *JobDescription
	Err         error
}

// JobDescriptions fetches several postings in parallel. Results keep the order of
// urls; a failed URL records its error without cancelling the others. The returned
// error is only set when ctx ends before all fetches complete.
func (f *Fetcher) JobDescriptions(ctx context.Context, urls []string) ([]BatchResult, error) {
	results := make([]BatchResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	if f.opts.Concurrency > 0 {
		g.SetLimit(f.opts.Concurrency)
	}

	for i, u := range urls {
		g.Go(func() error {
			jd, err := f.JobDescription(gctx, u)
			results[i] = BatchResult{URL: u, Description: jd, Err: err}
			if err != nil {
				f.logger.Warn("failed to fetch job description", zap.String("url", u), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}
