package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/pageza/dietwise/backend/internal/service"
)

// Options configures a DailyPipeline
type Options struct {
	// Delay separates the backfill pass from the adjustment pass
	Delay time.Duration
	// Hour and Minute (UTC) of the daily run
	Hour   int
	Minute int
	// Scheduled enables the daily run. Triggered runs work either way.
	Scheduled bool
}

// RunReport summarizes one pipeline run
type RunReport struct {
	RunID      string                  `json:"run_id"`
	StartedAt  time.Time               `json:"started_at"`
	FinishedAt time.Time               `json:"finished_at"`
	Backfill   *service.BackfillReport `json:"backfill"`
	Generated  int                     `json:"generated"`
	Failed     []string                `json:"failed,omitempty"`
}

// DailyPipeline backfills missing meals for every user, waits, and then
// generates an adjustment for every user. Runs never overlap.
type DailyPipeline struct {
	meals       service.IMealService
	profiles    service.IProfileService
	adjustments service.IAdjustmentService
	opts        Options
	now         func() time.Time
	trigger     chan struct{}
}

func NewDailyPipeline(
	meals service.IMealService,
	profiles service.IProfileService,
	adjustments service.IAdjustmentService,
	opts Options,
) *DailyPipeline {
	return &DailyPipeline{
		meals:       meals,
		profiles:    profiles,
		adjustments: adjustments,
		opts:        opts,
		now:         time.Now,
		trigger:     make(chan struct{}, 1),
	}
}

// Trigger queues an out-of-band run. It reports false when a run is already queued.
func (p *DailyPipeline) Trigger() bool {
	select {
	case p.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// Start runs the pipeline daily and on Trigger until ctx is cancelled. The
// cron entry only queues a run, so scheduled and triggered runs share one
// goroutine and never overlap.
func (p *DailyPipeline) Start(ctx context.Context) {
	if p.opts.Scheduled {
		c := cron.New(cron.WithLocation(time.UTC))
		if _, err := c.AddFunc(CronSpec(p.opts.Hour, p.opts.Minute), p.enqueueScheduled); err != nil {
			log.Printf("[Scheduler] Invalid daily schedule %02d:%02d: %v", p.opts.Hour, p.opts.Minute, err)
		} else {
			c.Start()
			defer c.Stop()
			next, _ := NextRun(p.now(), p.opts.Hour, p.opts.Minute)
			log.Printf("[Scheduler] Daily pipeline scheduled at %02d:%02d UTC, next run %s",
				p.opts.Hour, p.opts.Minute, next.Format(time.RFC3339))
		}
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("[Scheduler] Stopped")
			return
		case <-p.trigger:
		}

		if _, err := p.RunOnce(ctx); err != nil {
			log.Printf("[Scheduler] Run failed: %v", err)
		}
	}
}

func (p *DailyPipeline) enqueueScheduled() {
	if !p.Trigger() {
		log.Printf("[Scheduler] A run is already queued, skipping scheduled run")
	}
}

// RunOnce performs one backfill-then-adjust pass over every user
func (p *DailyPipeline) RunOnce(ctx context.Context) (*RunReport, error) {
	report := &RunReport{RunID: uuid.NewString(), StartedAt: p.now().UTC()}
	log.Printf("[Scheduler] Run %s started", report.RunID)

	backfill, err := p.meals.ScanAndBackfill(ctx, report.StartedAt)
	if err != nil {
		return report, fmt.Errorf("backfill failed: %w", err)
	}
	report.Backfill = backfill

	if p.opts.Delay > 0 {
		timer := time.NewTimer(p.opts.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return report, ctx.Err()
		case <-timer.C:
		}
	}

	userIDs, err := p.profiles.ListUserIDs(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list users: %w", err)
	}

	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if _, err := p.adjustments.Generate(ctx, userID); err != nil {
			log.Printf("[Scheduler] Adjustment failed for user %s: %v", userID, err)
			report.Failed = append(report.Failed, userID)
			continue
		}
		report.Generated++
	}

	report.FinishedAt = p.now().UTC()
	log.Printf("[Scheduler] Run %s finished: %d generated, %d failed in %v",
		report.RunID, report.Generated, len(report.Failed), report.FinishedAt.Sub(report.StartedAt))
	return report, nil
}

// CronSpec is the standard cron expression for a daily run at hour:minute
func CronSpec(hour, minute int) string {
	return fmt.Sprintf("%d %d * * *", minute, hour)
}

// NextRun returns the first instant at hour:minute UTC strictly after now
func NextRun(now time.Time, hour, minute int) (time.Time, error) {
	schedule, err := cron.ParseStandard(CronSpec(hour, minute))
	if err != nil {
		return time.Time{}, err
	}
	return schedule.Next(now.UTC()), nil
}
