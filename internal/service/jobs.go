package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/langchou/garagebook/internal/events"
	"github.com/langchou/garagebook/internal/metrics"
	"github.com/langchou/garagebook/internal/models"
	"github.com/langchou/garagebook/internal/repository"
	"github.com/langchou/garagebook/internal/state"
)

// JobService 定时任务
type JobService struct {
	logger    *zap.Logger
	requests  MaintenanceStore
	publisher events.Publisher
	now       func() time.Time
}

// NewJobService 创建定时任务服务
func NewJobService(logger *zap.Logger, requests MaintenanceStore, publisher events.Publisher) *JobService {
	return &JobService{
		logger:    logger,
		requests:  requests,
		publisher: publisher,
		now:       time.Now,
	}
}

// MarkMissedRequests 将日期已过仍为 scheduled 的预约标记为 missed，返回标记数量
func (s *JobService) MarkMissedRequests(ctx context.Context) (int, error) {
	now := s.now().UTC()
	today := models.NewDate(now.Year(), now.Month(), now.Day())

	overdue, err := s.requests.ListOverdue(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("list overdue requests: %w", err)
	}
	if len(overdue) == 0 {
		s.logger.Debug("No overdue maintenance requests")
		return 0, nil
	}

	marked := 0
	for i := range overdue {
		req := &overdue[i]
		machine := state.NewMachine(req.Status)
		to, err := machine.Trigger(ctx, state.EventMiss)
		if err != nil {
			continue
		}

		if err := s.requests.UpdateStatus(ctx, req.ID, req.Status, to); err != nil {
			// 期间被其他请求修改了状态
			if errors.Is(err, repository.ErrStatusChanged) {
				continue
			}
			return marked, fmt.Errorf("mark request %d missed: %w", req.ID, err)
		}

		from := req.Status
		req.Status = to
		marked++
		metrics.MissedRequestsTotal.Inc()
		s.publisher.Publish(ctx, events.New(events.MaintenanceTransitioned, requestKey(req.ID), &TransitionResult{
			Request:         req,
			From:            from,
			To:              to,
			Event:           state.EventMiss,
			AvailableEvents: machine.AvailableEvents(),
		}))
	}

	s.logger.Info("Marked overdue maintenance requests as missed",
		zap.Int("found", len(overdue)),
		zap.Int("marked", marked))
	return marked, nil
}

// Scheduler 基于 cron 表达式的任务调度器
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// NewScheduler 创建调度器，任务重叠时跳过
func NewScheduler(logger *zap.Logger) *Scheduler {
	cl := cronLogger{logger.Sugar()}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
	}
}

// Schedule 注册任务
func (s *Scheduler) Schedule(spec, name string, job func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		if err := job(context.Background()); err != nil {
			s.logger.Error("Scheduled job failed", zap.String("job", name), zap.Error(err))
			return
		}
		s.logger.Debug("Scheduled job finished", zap.String("job", name), zap.Duration("elapsed", time.Since(start)))
	})
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	return nil
}

// Run 启动调度，ctx 取消后等待运行中的任务结束
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	return nil
}

// cronLogger 将 cron 日志转到 zap
type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
