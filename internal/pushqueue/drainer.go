package pushqueue

import (
	"context"

	"github.com/julienmorel/caisse-backend/pkg/logger"
)

// Drainer runs drain cycles whenever a connectivity signal fires.
// Signals that arrive while a drain is in flight are coalesced by the
// channel; anything still pending is picked up on the next signal.
type Drainer struct {
	service *Service
	signal  <-chan struct{}
	logg    *logger.Logger
}

func NewDrainer(service *Service, signal <-chan struct{}, logg *logger.Logger) *Drainer {
	return &Drainer{service: service, signal: signal, logg: logg}
}

// Run blocks until ctx is canceled, draining the queue on each signal.
func (d *Drainer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-d.signal:
			if !ok {
				return
			}
			if err := d.service.Drain(ctx); err != nil && d.logg != nil {
				d.logg.Warn(ctx, "drain cycle finished with failures")
			}
		}
	}
}
