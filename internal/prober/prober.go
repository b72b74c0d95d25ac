package prober

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/cluemart-landing/internal/metrics"
)

const timeoutDuration = 10 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

// Status is the outcome of the most recent provider ping.
type Status struct {
	Checked   bool      `json:"checked"`
	Up        bool      `json:"up"`
	LastCheck time.Time `json:"last_check,omitempty"`
	LastError string    `json:"last_error,omitempty"`
}

// Prober pings the mailing list provider on a cron schedule.
type Prober struct {
	pinger pinger
	spec   string
	logger zerolog.Logger
	cron   *cron.Cron
	cancel context.CancelFunc
	m      *metrics.Metrics
	now    func() time.Time

	mu     sync.RWMutex
	status Status
}

func New(p pinger, spec string, logger zerolog.Logger, m *metrics.Metrics) *Prober {
	return &Prober{
		pinger: p,
		spec:   spec,
		logger: logger.With().Str("component", "Prober").Logger(),
		cron:   cron.New(cron.WithSeconds()),
		m:      m,
		now:    time.Now,
	}
}

// Start schedules the probe and runs one immediately.
func (p *Prober) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	if _, err := p.cron.AddFunc(p.spec, func() { p.Check(ctx) }); err != nil {
		cancel()
		p.logger.Error().Err(err).Str("spec", p.spec).Msg("failed to schedule provider probe")
		p.m.TechnicalErrors.WithLabelValues("cron_schedule_error", "critical").Inc()
		return err
	}

	p.cron.Start()
	go p.Check(ctx)
	p.logger.Info().Str("spec", p.spec).Msg("provider prober started")
	return nil
}

// Stop cancels the schedule and waits for a running probe.
func (p *Prober) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	<-p.cron.Stop().Done()
	p.logger.Info().Msg("provider prober stopped")
}

// Check pings the provider once and records the result.
func (p *Prober) Check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, timeoutDuration)
	defer cancel()

	err := p.pinger.Ping(ctx)

	st := Status{Checked: true, Up: err == nil, LastCheck: p.now().UTC()}
	if err != nil {
		st.LastError = err.Error()
		p.m.ProviderUp.Set(0)
		p.logger.Warn().Err(err).Msg("provider ping failed")
	} else {
		p.m.ProviderUp.Set(1)
		p.logger.Debug().Msg("provider ping ok")
	}

	p.mu.Lock()
	p.status = st
	p.mu.Unlock()
}

func (p *Prober) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}
