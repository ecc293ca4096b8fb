/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"context"

	"golang.org/x/sync/errgroup"

	"bennypowers.dev/depspec/internal/logger"
)

// Outcome pairs a wanted dependency with its resolution or failure.
type Outcome struct {
	Wanted WantedDependency
	Result *ResolveResult
	Err    error
}

// ResolveAll resolves every dependency with at most limit resolutions in
// flight (no limit when limit <= 0). Outcomes are returned in input order;
// one dependency failing does not stop the others.
func ResolveAll(ctx context.Context, r Resolver, wanted []WantedDependency, rctx ResolveContext, limit int) []Outcome {
	outcomes := make([]Outcome, len(wanted))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, w := range wanted {
		g.Go(func() error {
			outcomes[i] = Outcome{Wanted: w}
			if err := ctx.Err(); err != nil {
				outcomes[i].Err = err
				return nil
			}
			result, err := r.Resolve(ctx, w, rctx)
			if err != nil {
				logger.Debug("resolving %s: %v", w, err)
			}
			outcomes[i].Result, outcomes[i].Err = result, err
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// Failed returns the outcomes that ended in an error.
func Failed(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}
