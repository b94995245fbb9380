// Package notification mantiene el contador de notificaciones no leídas de la consola.
package notification

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/session"
	"github.com/jhoicas/Inventario-console/pkg/i18n"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

// DefaultInterval intervalo de sondeo por defecto.
const DefaultInterval = 5 * time.Second

// UnreadCounter fuente del contador (el caso de uso del registro de actividad).
type UnreadCounter interface {
	UnreadCount(ctx context.Context) (int, error)
}

// Poller consulta las no leídas al arrancar y luego cada intervalo mientras haya sesión.
// Un fallo se registra y el ciclo sigue; el último valor bueno se conserva.
type Poller struct {
	counter  UnreadCounter
	interval time.Duration
	tr       *i18n.Translator
	log      *logger.Logger
	relay    *StreamRelay
	now      func() time.Time

	trigger chan struct{}

	mu     sync.Mutex
	status dto.NotificationStatus
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configura el Poller.
type Option func(*Poller)

// WithStream además del sondeo, consume el stream del backend y sondea en cada evento.
func WithStream(relay *StreamRelay) Option {
	return func(p *Poller) { p.relay = relay }
}

// NewPoller construye el poller detenido. interval <= 0 usa DefaultInterval.
func NewPoller(counter UnreadCounter, interval time.Duration, tr *i18n.Translator, log *logger.Logger, opts ...Option) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	p := &Poller{
		counter:  counter,
		interval: interval,
		tr:       tr,
		log:      log.Named("notifications"),
		now:      time.Now,
		trigger:  make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Start arranca el ciclo si no está corriendo. Se detiene con Stop o al cancelar ctx.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.status.Running = true
	go p.run(ctx, p.done)
	if p.relay != nil {
		go p.relay.Run(ctx, p.Poke)
	}
	p.log.Debug().Dur("interval", p.interval).Msg("sondeo de notificaciones iniciado")
}

// Stop detiene el ciclo y espera a que termine. El contador vuelve a cero.
func (p *Poller) Stop() {
	done := p.halt()
	if done == nil {
		return
	}
	<-done
	p.log.Debug().Msg("sondeo de notificaciones detenido")
}

// halt cancela el ciclo en curso sin esperarlo y devuelve su canal done (nil si no corría).
// Un Start posterior arranca un ciclo nuevo aunque el anterior aún no haya salido.
func (p *Poller) halt() chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel == nil {
		return nil
	}
	p.cancel()
	done := p.done
	p.cancel, p.done = nil, nil
	p.status = dto.NotificationStatus{}
	return done
}

// Running indica si el ciclo está activo.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Poke pide un sondeo inmediato sin bloquear. Varias llamadas seguidas se funden en una.
func (p *Poller) Poke() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Status último resultado conocido.
func (p *Poller) Status() dto.NotificationStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// SessionListener arranca el poller al autenticarse y lo detiene al cerrar o invalidar la sesión.
func (p *Poller) SessionListener(ctx context.Context) func(session.Event) {
	return func(ev session.Event) {
		if ev.Authenticated {
			p.Start(ctx)
			return
		}
		// Sin esperar: el ciclo puede estar en la misma petición que provocó la invalidación.
		if p.halt() != nil {
			p.log.Debug().Str("reason", ev.Reason).Msg("sondeo de notificaciones detenido")
		}
	}
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.PollOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-p.trigger:
		}
		p.PollOnce(ctx)
	}
}

// PollOnce consulta el contador una vez y actualiza el estado. Ante un error conserva el último valor.
func (p *Poller) PollOnce(ctx context.Context) error {
	n, err := p.counter.UnreadCount(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.log.Warn().Err(err).Msg("no se pudo consultar notificaciones")
		}
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if ctx.Err() != nil {
		// Ciclo ya cancelado: no pisa el estado del siguiente.
		return ctx.Err()
	}
	p.status.Unread = n
	p.status.Label = p.tr.T(i18n.MsgUnreadCount, n)
	p.status.CheckedAt = p.now()
	return nil
}
