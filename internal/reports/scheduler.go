package reports

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the periodic portfolio export.
type Scheduler struct {
	cron    *cron.Cron
	service *Service
	spec    string
	timeout time.Duration
	logger  *zap.Logger
	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler that exports the portfolio workbook on the
// given cron spec (standard five-field format).
func NewScheduler(service *Service, spec string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		service: service,
		spec:    spec,
		timeout: 5 * time.Minute,
		logger:  logger,
	}
}

// Start registers the export job and starts the cron loop.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	_, err := s.cron.AddFunc(s.spec, s.runExport)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("report scheduler started", zap.String("cron", s.spec))
	return nil
}

// Stop stops the cron loop and waits for a running export to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	s.logger.Info("report scheduler stopped")
}

func (s *Scheduler) runExport() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	path, err := s.service.ExportPortfolio(ctx)
	if err != nil {
		s.logger.Error("scheduled portfolio export failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduled portfolio export finished", zap.String("path", path))
}
