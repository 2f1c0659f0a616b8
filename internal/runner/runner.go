// Package runner executes a plan in one of the run modes: it renders the
// block, runs the bootstrap commands and then checks, writes, updates or
// clears the crontab.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/aatumaykin/cronplan/internal/constants"
	"github.com/aatumaykin/cronplan/internal/crontab"
	"github.com/aatumaykin/cronplan/internal/logger"
	"github.com/aatumaykin/cronplan/internal/metrics"
	"github.com/aatumaykin/cronplan/internal/plan"
	"github.com/aatumaykin/cronplan/internal/schedule"
)

// Result describes a finished run.
type Result struct {
	RunID  string
	Mode   Mode
	Action crontab.Action
	Block  string
	Jobs   int
}

// Runner runs plans against a crontab.
type Runner struct {
	sync     *crontab.Synchronizer
	executor Executor
	logger   *logger.Logger
	metrics  *metrics.PrometheusMetrics
	textfile string
	out      io.Writer
	now      func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets where blocks and status lines are printed. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// WithExecutor replaces the bootstrap command executor.
func WithExecutor(e Executor) Option {
	return func(r *Runner) { r.executor = e }
}

// WithMetrics records every run in m. When textfile is not empty the
// metrics are written there after each run.
func WithMetrics(m *metrics.PrometheusMetrics, textfile string) Option {
	return func(r *Runner) {
		r.metrics = m
		r.textfile = textfile
	}
}

// WithClock sets the time source used for durations and next run previews.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// New creates a runner that synchronizes through sync.
func New(sync *crontab.Synchronizer, log *logger.Logger, opts ...Option) *Runner {
	r := &Runner{
		sync:     sync,
		executor: ShellExecutor{},
		logger:   log,
		out:      os.Stdout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes p in mode. The block is rendered before anything else runs,
// so a plan with an invalid job never reaches bootstrap or the crontab.
func (r *Runner) Run(ctx context.Context, p *plan.Plan, mode Mode) (Result, error) {
	result := Result{
		RunID:  uuid.NewString(),
		Mode:   mode,
		Action: crontab.ActionUnchanged,
		Jobs:   len(p.Jobs()),
	}
	log := r.logger.With(
		logger.Field{Key: "run_id", Value: result.RunID},
		logger.Field{Key: "plan", Value: p.Name()},
		logger.Field{Key: "mode", Value: string(mode)},
	)

	start := r.now()
	err := r.run(ctx, log, p, &result)
	r.record(log, p.Name(), mode, result.Jobs, r.now().Sub(start), err)

	if err != nil {
		log.ErrorCtx(ctx, "run failed", err)
		return result, err
	}
	log.InfoCtx(ctx, "run finished", logger.Field{Key: "action", Value: string(result.Action)})
	return result, nil
}

func (r *Runner) run(ctx context.Context, log *logger.Logger, p *plan.Plan, result *Result) error {
	if _, err := ParseMode(string(result.Mode)); err != nil {
		return err
	}

	block, err := p.Content()
	if err != nil {
		return fmt.Errorf("failed to render plan %q: %w", p.Name(), err)
	}
	result.Block = block

	if err := r.bootstrap(ctx, log, p.BootstrapCommands()); err != nil {
		return err
	}

	var action crontab.Action
	switch result.Mode {
	case ModeCheck:
		fmt.Fprint(r.out, block)
		fmt.Fprintln(r.out, constants.MsgCrontabNotUpdated)
		r.preview(log, p)
		return nil
	case ModeWrite:
		action, err = r.sync.Write(ctx, block)
	case ModeUpdate:
		action, err = r.sync.Update(ctx, p.Name(), block)
	case ModeClear:
		action, err = r.sync.Clear(ctx, p.Name())
	}
	if err != nil {
		return err
	}

	result.Action = action
	if action != crontab.ActionUnchanged {
		fmt.Fprintf(r.out, constants.MsgCrontabAction, action)
	}
	return nil
}

// bootstrap runs commands in order. A failing command is logged and the
// remaining commands still run; only cancellation stops the sequence.
func (r *Runner) bootstrap(ctx context.Context, log *logger.Logger, commands []string) error {
	if len(commands) == 0 {
		return nil
	}

	fmt.Fprintln(r.out, constants.MsgBootstrapStart)
	for i, command := range commands {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("bootstrap interrupted: %w", err)
		}

		log.Debug("running bootstrap command",
			logger.Field{Key: "index", Value: i + 1},
			logger.Field{Key: "command", Value: command})

		if err := r.executor.Execute(ctx, command, r.out); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return fmt.Errorf("bootstrap interrupted: %w", ctxErr)
			}
			log.WarnCtx(ctx, "bootstrap command failed",
				logger.Field{Key: "command", Value: command},
				logger.Field{Key: "error", Value: err.Error()})
		}
	}
	fmt.Fprintf(r.out, "%s\n\n", constants.MsgBootstrapDone)
	return nil
}

// preview logs when each job fires next. Expressions the preview parser
// rejects are logged as warnings.
func (r *Runner) preview(log *logger.Logger, p *plan.Plan) {
	now := r.now()
	for _, j := range p.Jobs() {
		fields, err := j.Schedule()
		if err != nil {
			continue
		}

		next, err := schedule.Next(fields, now)
		switch {
		case errors.Is(err, schedule.ErrNoNextRun):
			log.Debug("job has no calendar schedule",
				logger.Field{Key: "task", Value: j.Task},
				logger.Field{Key: "schedule", Value: fields})
		case err != nil:
			log.Warn("schedule not understood by preview",
				logger.Field{Key: "task", Value: j.Task},
				logger.Field{Key: "schedule", Value: fields},
				logger.Field{Key: "error", Value: err.Error()})
		default:
			log.Info("next run",
				logger.Field{Key: "task", Value: j.Task},
				logger.Field{Key: "schedule", Value: fields},
				logger.Field{Key: "next", Value: next.Format(time.RFC3339)})
		}
	}
}

func (r *Runner) record(log *logger.Logger, name string, mode Mode, jobs int, duration time.Duration, err error) {
	if r.metrics == nil {
		return
	}

	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusFailure
	}
	r.metrics.RecordRun(name, string(mode), status, duration)
	r.metrics.SetPlanJobs(name, jobs)

	if r.textfile == "" {
		return
	}
	if werr := r.metrics.WriteTextfile(r.textfile); werr != nil {
		log.Warn("failed to write metrics", logger.Field{Key: "path", Value: r.textfile},
			logger.Field{Key: "error", Value: werr.Error()})
	}
}
