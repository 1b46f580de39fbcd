package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// TickFunc is the job run on every trigger.
type TickFunc func(ctx context.Context) error

// Scheduler fires a TickFunc on a cron schedule in the process local time.
// A tick still running when the next one is due is skipped.
type Scheduler struct {
	cron     *cron.Cron
	schedule cron.Schedule
	tick     TickFunc
	log      *zap.Logger
}

func NewScheduler(spec string, tick TickFunc, log *zap.Logger) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	cl := cronLogger{log: log.Sugar()}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.Local),
			cron.WithLogger(cl),
			cron.WithChain(cron.SkipIfStillRunning(cl), cron.Recover(cl)),
		),
		schedule: schedule,
		tick:     tick,
		log:      log,
	}
	s.cron.Schedule(schedule, cron.FuncJob(s.run))
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("greeting scheduler started", zap.Time("next_run", s.Next()))
}

// Stop halts the trigger and returns a context done once a running tick ends.
func (s *Scheduler) Stop() context.Context {
	ctx := s.cron.Stop()
	s.log.Info("greeting scheduler stopped")
	return ctx
}

// Next is the time of the upcoming tick.
func (s *Scheduler) Next() time.Time {
	return s.schedule.Next(time.Now().In(time.Local))
}

// RunNow executes one tick synchronously, outside the schedule.
func (s *Scheduler) RunNow() {
	s.run()
}

// run recovers panics itself, so RunNow is covered as well.
func (s *Scheduler) run() {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("greeting tick panicked",
				zap.Any("panic", r),
				zap.Stack("stack"),
				zap.Duration("elapsed", time.Since(start)))
		}
	}()
	if err := s.tick(context.Background()); err != nil {
		s.log.Error("greeting tick aborted", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return
	}
	s.log.Debug("greeting tick finished", zap.Duration("elapsed", time.Since(start)))
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
