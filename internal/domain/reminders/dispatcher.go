package reminders

import (
	"context"
	"fmt"
	"time"

	"dose-agil/internal/platform/logger"

	"github.com/robfig/cron/v3"
)

const DefaultDispatchSpec = "@every 1m"

// Dispatcher corre DispatchDue periódicamente con robfig/cron.
// Un tick nunca se solapa con el anterior.
type Dispatcher struct {
	svc     *Service
	cron    *cron.Cron
	log     logger.Logger
	timeout time.Duration
}

type DispatcherOptions struct {
	Spec     string // sintaxis cron o "@every 1m"
	Location *time.Location
	Logger   logger.Logger
	Timeout  time.Duration // tope por tick
}

func NewDispatcher(svc *Service, opts DispatcherOptions) (*Dispatcher, error) {
	spec := opts.Spec
	if spec == "" {
		spec = DefaultDispatchSpec
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 50 * time.Second
	}

	cl := cronLogger{log: log}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	d := &Dispatcher{svc: svc, cron: c, log: log, timeout: timeout}
	if _, err := c.AddFunc(spec, d.Tick); err != nil {
		return nil, fmt.Errorf("reminder schedule %q: %w", spec, err)
	}
	return d, nil
}

func (d *Dispatcher) Start() {
	d.cron.Start()
	d.log.Info("reminder dispatcher started", nil)
}

// Stop deja de agendar ticks y espera el que esté corriendo (o ctx).
func (d *Dispatcher) Stop(ctx context.Context) error {
	done := d.cron.Stop()
	select {
	case <-done.Done():
		d.log.Info("reminder dispatcher stopped", nil)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Tick procesa un lote de avisos vencidos.
func (d *Dispatcher) Tick() {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	res, err := d.svc.DispatchDue(ctx)
	if err != nil {
		d.log.Error("reminder dispatch failed", map[string]any{"error": err})
		return
	}
	if res == (DispatchResult{}) {
		return
	}
	d.log.Info("reminder dispatch", map[string]any{
		"sent":    res.Sent,
		"failed":  res.Failed,
		"expired": res.Expired,
		"rearmed": res.Rearmed,
		"skipped": res.Skipped,
	})
}

// cronLogger adapta logger.Logger a cron.Logger.
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, kvToMap(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	fields := kvToMap(keysAndValues)
	fields["error"] = err
	l.log.Error("cron: "+msg, fields)
}

func kvToMap(kv []any) map[string]any {
	out := make(map[string]any, len(kv)/2+1)
	for i := 0; i+1 < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			k = fmt.Sprint(kv[i])
		}
		out[k] = kv[i+1]
	}
	return out
}
