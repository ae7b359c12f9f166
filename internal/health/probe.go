package health

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/cori-saude/cori-web/internal/api"
	"github.com/cori-saude/cori-web/internal/metrics"
)

// Probe periodically checks the practice API and caches the result for the
// readiness endpoint, so /readyz never blocks on the upstream.
type Probe struct {
	api     *api.Client
	cron    *cron.Cron
	timeout time.Duration
	healthy atomic.Bool
}

func NewProbe(client *api.Client, timeout time.Duration) *Probe {
	return &Probe{
		api:     client,
		cron:    cron.New(),
		timeout: timeout,
	}
}

// Start runs one immediate check and schedules recurring ones. The schedule
// uses standard cron syntax, e.g. "*/1 * * * *".
func (p *Probe) Start(schedule string) error {
	p.check()
	if _, err := p.cron.AddFunc(schedule, p.check); err != nil {
		return err
	}
	p.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running check to finish.
func (p *Probe) Stop() {
	<-p.cron.Stop().Done()
}

// Healthy reports the cached result of the last upstream check.
func (p *Probe) Healthy() bool {
	return p.healthy.Load()
}

func (p *Probe) check() {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	err := p.api.Health(ctx)
	up := err == nil
	if !up {
		log.Printf("[WARN] upstream health check failed: %v", err)
	}
	p.healthy.Store(up)
	metrics.SetUpstreamUp(up)
}
