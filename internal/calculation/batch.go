package calculation

import (
	"context"
	"runtime"

	"github.com/rgehrsitz/ilpgo/internal/domain"
	"golang.org/x/sync/errgroup"
)

// BatchJob is one independent projection in a batch.
type BatchJob struct {
	Name      string
	Params    domain.PolicyParameters
	Reference ReferenceData
	Years     int // 0 uses the engine's horizon
}

// BatchResult pairs a job with its projection or its error.
type BatchResult struct {
	Name       string
	Projection *domain.Projection
	Err        error
}

// RunBatch runs the jobs concurrently and returns results in job order. A
// failing job only affects its own result. Cancellation is observed between
// runs; jobs not started before ctx is done report ctx.Err().
func (pe *ProjectionEngine) RunBatch(ctx context.Context, jobs []BatchJob) ([]BatchResult, error) {
	results := make([]BatchResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, job := range jobs {
		i, job := i, job
		results[i].Name = job.Name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			eng := pe
			if job.Years > 0 {
				eng = pe.WithHorizon(job.Years)
			}
			proj, err := eng.RunReference(job.Params, job.Reference)
			if err != nil {
				pe.logger().Errorf("batch job %q failed: %v", job.Name, err)
				results[i].Err = err
				return nil
			}
			proj.Name = job.Name
			results[i].Projection = proj
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
