package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/calc-hub/internal/integrations/ratefeed"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// SitemapWriter regenerates the sitemap file
type SitemapWriter interface {
	WriteFile(path string) (int, error)
}

// RateFetcher refreshes the reference rate
type RateFetcher interface {
	Fetch(ctx context.Context) (*ratefeed.Rate, error)
}

// Scheduler runs periodic maintenance jobs
type Scheduler struct {
	c   *cron.Cron
	log *logrus.Logger
}

// NewScheduler creates a scheduler; panics in jobs are recovered and logged
func NewScheduler(log *logrus.Logger) *Scheduler {
	logger := cron.PrintfLogger(log)
	return &Scheduler{
		c: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		log: log,
	}
}

// Add registers fn under a five-field cron spec or an @descriptor
func (s *Scheduler) Add(name, spec string, fn func()) error {
	if _, err := s.c.AddFunc(spec, fn); err != nil {
		return fmt.Errorf("failed to schedule %s (%q): %w", name, spec, err)
	}
	s.log.Infof("Scheduled %s: %s", name, spec)
	return nil
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.c.Start()
}

// Stop stops scheduling and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.c.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("Scheduler stop timed out with jobs still running")
	}
}

// SitemapJob rewrites the sitemap file at path
func SitemapJob(w SitemapWriter, path string, log *logrus.Logger) func() {
	return func() {
		start := time.Now()
		n, err := w.WriteFile(path)
		if err != nil {
			log.Errorf("Sitemap regeneration failed: %v", err)
			return
		}
		log.WithFields(logrus.Fields{"path": path, "urls": n, "took_ms": time.Since(start).Milliseconds()}).Info("Sitemap regenerated")
	}
}

// RateRefreshJob fetches a fresh reference rate into the cache
func RateRefreshJob(f RateFetcher, timeout time.Duration, log *logrus.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := f.Fetch(ctx); err != nil {
			log.Warnf("Rate refresh failed: %v", err)
		}
	}
}
