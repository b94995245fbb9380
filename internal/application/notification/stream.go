package notification

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

// Subscriber stream de eventos del registro de actividad.
type Subscriber interface {
	Subscribe(ctx context.Context, fn func(repository.HistoryLogEvent)) error
}

// StreamRelay reenvía cada evento del stream como un sondeo inmediato.
// Al cortarse la conexión reintenta con espera exponencial entre MinBackoff y MaxBackoff.
type StreamRelay struct {
	sub        Subscriber
	log        *logger.Logger
	MinBackoff time.Duration
	MaxBackoff time.Duration
}

// NewStreamRelay construye el relay con espera de 1 s a 30 s.
func NewStreamRelay(sub Subscriber, log *logger.Logger) *StreamRelay {
	return &StreamRelay{sub: sub, log: log.Named("notify-stream"), MinBackoff: time.Second, MaxBackoff: 30 * time.Second}
}

// Run consume el stream hasta que ctx se cancele o el backend rechace la sesión.
func (r *StreamRelay) Run(ctx context.Context, onEvent func()) {
	backoff := r.MinBackoff
	for {
		received := false
		err := r.sub.Subscribe(ctx, func(ev repository.HistoryLogEvent) {
			received = true
			r.log.Debug().Str("event", ev.Name).Msg("evento de notificación")
			onEvent()
		})
		if ctx.Err() != nil {
			return
		}
		if errors.Is(err, domain.ErrUnauthorized) {
			r.log.Warn().Err(err).Msg("stream rechazado, se deja solo el sondeo")
			return
		}
		if received {
			backoff = r.MinBackoff
		}
		r.log.Warn().Err(err).Dur("retry_in", backoff).Msg("stream de notificaciones cortado")
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > r.MaxBackoff {
			backoff = r.MaxBackoff
		}
	}
}
