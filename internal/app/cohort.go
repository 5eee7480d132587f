package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/careersim/pkg/logger"
	"github.com/okian/careersim/pkg/metrics"
)

// seasonJob carries one tick through the worker pool and its result back.
type seasonJob struct {
	input SeasonInput
	reply chan seasonResult
}

type seasonResult struct {
	report SeasonReport
	err    error
}

func (s *Service) handle(ctx context.Context, job seasonJob) error {
	rep, err := s.SimulateSeason(ctx, job.input)
	job.reply <- seasonResult{report: rep, err: err}
	return err
}

// SimulateCohort runs one season for many athletes on the worker pool.
// Reports come back in input order; athletes whose tick failed get a zero
// report and their error is joined into the returned error. Ledger writes
// stay serialized per club, so concurrent moves never overdraw a club.
func (s *Service) SimulateCohort(ctx context.Context, season int, inputs []SeasonInput) ([]SeasonReport, error) {
	s.mu.RLock()
	started, q := s.started, s.queue
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}

	replies := make([]chan seasonResult, len(inputs))
	var errs []error
	for i, in := range inputs {
		in.Season = season
		replies[i] = make(chan seasonResult, 1)
		if !q.Enqueue(ctx, seasonJob{input: in, reply: replies[i]}) {
			replies[i] = nil
			errs = append(errs, fmt.Errorf("athlete %q: %w", in.AthleteID, ErrQueueFull))
			continue
		}
		metrics.UpdateQueueDepth(q.Len(ctx))
	}

	reports := make([]SeasonReport, len(inputs))
	for i, ch := range replies {
		if ch == nil {
			continue
		}
		select {
		case res := <-ch:
			reports[i] = res.report
			if res.err != nil {
				errs = append(errs, res.err)
			}
		case <-ctx.Done():
			return reports, fmt.Errorf("cohort season %d: %w", season, ctx.Err())
		}
	}

	s.logger.Info(ctx, "cohort season simulated",
		logger.Int("season", season),
		logger.Int("athletes", len(inputs)),
		logger.Int("failed", len(errs)),
	)
	return reports, errors.Join(errs...)
}
