// Package federate delegates schema retrieval and validation to other
// repository instances named by host-qualified paths.
package federate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/c360studio/semshape/metrics"
	"github.com/c360studio/semshape/namespace"
)

// HopHeader carries the federation hop count between instances. Without it,
// repositories pointing at each other would recurse until they ran out of
// sockets.
const HopHeader = "X-Semshape-Hops"

// Error wraps a failed remote call with the target that failed; the
// underlying cause is never masked.
type Error struct {
	Target string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("federation to %s failed: %v", e.Target, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Resolver performs outbound federation calls with a timeout and a hop
// guard.
type Resolver struct {
	client  *http.Client
	maxHops int
	logger  *slog.Logger
}

// New returns a Resolver. Zero values fall back to a 10s timeout and 5 hops.
func New(timeout time.Duration, maxHops int, logger *slog.Logger) *Resolver {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	if maxHops == 0 {
		maxHops = 5
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		client:  &http.Client{Timeout: timeout},
		maxHops: maxHops,
		logger:  logger,
	}
}

// MaxHops returns the configured hop limit.
func (r *Resolver) MaxHops() int { return r.maxHops }

// FetchSchema retrieves a schema from a remote instance in the requested
// representation. hops is the count already consumed by upstream callers.
func (r *Resolver) FetchSchema(ctx context.Context, remote *namespace.RemoteRef, accept string, hops int) ([]byte, string, error) {
	target := remote.Base + "/" + remote.Path
	if hops >= r.maxHops {
		metrics.FederationCalls.WithLabelValues("hop_limit").Inc()
		return nil, "", &Error{Target: target, Err: fmt.Errorf("hop limit %d reached", r.maxHops)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, "", &Error{Target: target, Err: err}
	}
	req.Header.Set("Accept", accept)
	req.Header.Set(HopHeader, strconv.Itoa(hops+1))

	body, contentType, err := r.do(req)
	if err != nil {
		return nil, "", &Error{Target: target, Err: err}
	}
	return body, contentType, nil
}

// Validate forwards an instance payload to the remote's validation endpoint
// and returns the remote's conformance report verbatim.
func (r *Resolver) Validate(ctx context.Context, remote *namespace.RemoteRef, payload []byte, contentType string, hops int) ([]byte, error) {
	target := remote.Base + "/validate/" + remote.Path
	if hops >= r.maxHops {
		metrics.FederationCalls.WithLabelValues("hop_limit").Inc()
		return nil, &Error{Target: target, Err: fmt.Errorf("hop limit %d reached", r.maxHops)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{Target: target, Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(HopHeader, strconv.Itoa(hops+1))

	body, _, err := r.do(req)
	if err != nil {
		return nil, &Error{Target: target, Err: err}
	}
	return body, nil
}

func (r *Resolver) do(req *http.Request) ([]byte, string, error) {
	r.logger.Debug("Federation request", "method", req.Method, "url", req.URL.String())

	resp, err := r.client.Do(req)
	if err != nil {
		metrics.FederationCalls.WithLabelValues("error").Inc()
		return nil, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.FederationCalls.WithLabelValues("error").Inc()
		return nil, "", err
	}
	if resp.StatusCode != http.StatusOK {
		metrics.FederationCalls.WithLabelValues("remote_error").Inc()
		return nil, "", fmt.Errorf("remote returned %d: %s", resp.StatusCode, truncate(body, 200))
	}

	metrics.FederationCalls.WithLabelValues("ok").Inc()
	return body, resp.Header.Get("Content-Type"), nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
