package pipeline

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/seobuilder/internal/events"
	"git.home.luguber.info/inful/seobuilder/internal/history"
	"git.home.luguber.info/inful/seobuilder/internal/logfields"
)

// finish records the run in history and publishes its findings. Neither is
// allowed to change the outcome of the run; failures are logged.
func (p *Pipeline) finish(ctx context.Context, st *runState, runErr error, log *slog.Logger) {
	res := st.result
	if res.Batch == nil {
		return
	}
	// Findings are still worth recording when the caller canceled.
	ctx = context.WithoutCancel(ctx)

	status := "completed"
	if runErr != nil {
		status = "failed"
	}
	gatePassed := res.Gate != nil && res.Gate.Passed

	if p.history != nil {
		run := history.Run{
			ID:           res.RunID,
			Command:      p.plan.Command,
			StartedAt:    st.start,
			Duration:     res.Duration,
			Status:       status,
			Pages:        res.Batch.Total,
			Valid:        res.Batch.ValidCount,
			Invalid:      res.Batch.InvalidCount,
			AverageScore: res.Batch.AverageScore,
			GatePassed:   gatePassed,
		}
		if res.Report != nil {
			run.Grade = string(res.Report.Grade)
		}
		if res.Manifest != nil {
			if h, err := res.Manifest.Hash(); err == nil {
				run.ManifestHash = h
			}
		}
		scores := make([]history.PageScore, 0, len(res.Batch.Pages))
		for _, pr := range res.Batch.Pages {
			scores = append(scores, history.PageScore{
				PageID:   pr.PageID,
				Score:    pr.Score,
				Errors:   len(pr.Errors),
				Warnings: len(pr.Warnings),
			})
		}
		if err := p.history.RecordRun(ctx, run, scores); err != nil {
			log.Warn("Failed to record run history", logfields.Error(err))
		}
	}

	now := p.now()
	ev := events.RunCompleted{
		RunID:        res.RunID,
		Command:      p.plan.Command,
		Pages:        res.Batch.Total,
		Valid:        res.Batch.ValidCount,
		Invalid:      res.Batch.InvalidCount,
		AverageScore: res.Batch.AverageScore,
		GatePassed:   gatePassed,
		BrokenLinks:  len(res.Batch.BrokenLinks),
		Duplicates:   res.Batch.DuplicateCount(),
		Timestamp:    now,
	}
	if res.Report != nil {
		ev.Grade = string(res.Report.Grade)
	}
	if err := p.publisher.PublishRun(ctx, ev); err != nil {
		log.Warn("Failed to publish run event", logfields.Error(err))
	}
	if len(res.Batch.BrokenLinks) > 0 {
		if err := p.publisher.PublishBrokenLinks(ctx, res.RunID, res.Batch.BrokenLinks); err != nil {
			log.Warn("Failed to publish broken links", logfields.Error(err))
		}
	}
	if res.Gate != nil && !res.Gate.Passed {
		gf := events.GateFailed{RunID: res.RunID, Blocking: res.Gate.Blocking, Timestamp: now}
		if err := p.publisher.PublishGateFailed(ctx, gf); err != nil {
			log.Warn("Failed to publish gate failure", logfields.Error(err))
		}
	}
}
