package pushqueue

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/julienmorel/caisse-backend/pkg/db/models"
)

// Sender delivers one queued payload to the reporting endpoint.
type Sender interface {
	Send(ctx context.Context, item models.PushQueueItem) error
}

// HTTPSender posts payloads as JSON. The receiver dedupes on the
// idempotency key header, so a retried delivery is harmless.
type HTTPSender struct {
	Endpoint string
	Client   *http.Client
}

// Send implements Sender.
func (s *HTTPSender) Send(ctx context.Context, item models.PushQueueItem) error {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(item.Payload))
	if err != nil {
		return fmt.Errorf("building push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", item.IdempotencyKey)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("delivering %s: %w", item.IdempotencyKey, err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		resp.Body.Close()              //nolint:errcheck
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("delivering %s: endpoint returned %d", item.IdempotencyKey, resp.StatusCode)
	}
	return nil
}
