package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/dennismutuku2005/stream-wisp-sub001/internal/domain"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/types"
)

// ErrUnavailable marks a send that failed because the gateway could not be
// reached at all, as opposed to a rejected message.
var ErrUnavailable = errors.New("gateway unreachable")

// Transport delivers one message to one phone number.
type Transport interface {
	Send(ctx context.Context, phoneNumber, body string) error
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, phoneNumber, body string) error

func (f TransportFunc) Send(ctx context.Context, phoneNumber, body string) error {
	return f(ctx, phoneNumber, body)
}

// Registry resolves the transport for a channel.
type Registry map[domain.Channel]Transport

func (r Registry) For(channel domain.Channel) (Transport, error) {
	t, ok := r[channel]
	if !ok || t == nil {
		return nil, fmt.Errorf("%w: no transport for %q", types.ErrChannelNotConfigured, channel)
	}
	return t, nil
}

// classifyTransportError wraps connection-level failures with ErrUnavailable.
// Per-request timeouts stay plain failures.
func classifyTransportError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return err
	}
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func classifyStatus(status int, body []byte) error {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, status, string(body))
	default:
		return fmt.Errorf("gateway rejected message: status %d: %s", status, string(body))
	}
}
