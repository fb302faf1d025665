package observability

import (
	"context"

	"go.uber.org/zap"
)

// ZapObserver writes events to a zap.Logger using the same layout as
// SlogObserver.
type ZapObserver struct {
	logger *zap.Logger
}

// NewZapObserver creates a ZapObserver for logger. A nil logger discards.
func NewZapObserver(logger *zap.Logger) *ZapObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapObserver{logger: logger}
}

func (o *ZapObserver) OnEvent(ctx context.Context, event Event) {
	ce := o.logger.Check(event.Level.ZapLevel(), string(event.Type))
	if ce == nil {
		return
	}

	fields := make([]zap.Field, 0, len(event.Data)+1)
	fields = append(fields, zap.String("source", event.Source))
	for _, k := range event.keys() {
		switch v := event.Data[k].(type) {
		case error:
			fields = append(fields, zap.NamedError(k, v))
		default:
			fields = append(fields, zap.Any(k, v))
		}
	}
	ce.Write(fields...)
}
