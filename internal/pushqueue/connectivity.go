package pushqueue

import (
	"context"
	"net/http"
	"time"

	"github.com/julienmorel/caisse-backend/pkg/logger"
)

const defaultProbeInterval = 30 * time.Second

// ConnectivityWatcher probes the reporting endpoint and signals when
// it becomes reachable. The register spends whole fair days offline;
// the signal is what turns the buffered queue back into deliveries.
type ConnectivityWatcher struct {
	Endpoint string
	Interval time.Duration
	Client   *http.Client
	Logger   *logger.Logger
}

// Watch probes until ctx is canceled. A signal is emitted on every
// offline-to-online transition, and once at startup if the endpoint
// is already reachable.
func (w *ConnectivityWatcher) Watch(ctx context.Context) <-chan struct{} {
	signal := make(chan struct{}, 1)
	interval := w.Interval
	if interval <= 0 {
		interval = defaultProbeInterval
	}

	go func() {
		defer close(signal)
		online := false
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		probe := func() {
			reachable := w.probe(ctx)
			if reachable && !online {
				if w.Logger != nil {
					w.Logger.Info(ctx, "reporting endpoint reachable")
				}
				select {
				case signal <- struct{}{}:
				default:
				}
			}
			online = reachable
		}

		probe()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				probe()
			}
		}
	}()

	return signal
}

func (w *ConnectivityWatcher) probe(ctx context.Context) bool {
	client := w.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, w.Endpoint, nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close() //nolint:errcheck
	return resp.StatusCode < http.StatusInternalServerError
}
