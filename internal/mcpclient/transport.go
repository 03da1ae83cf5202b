package mcpclient

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Transport kinds accepted in an Endpoint.
const (
	KindStdio = "stdio"
	KindHTTP  = "http"
)

const DefaultCallTimeout = 60 * time.Second

// Endpoint describes how to reach an MCP server. Loaded once at startup and
// treated as immutable afterwards.
type Endpoint struct {
	Kind    string            `mapstructure:"kind"`
	Command string            `mapstructure:"command"`
	Args    []string          `mapstructure:"args"`
	Env     map[string]string `mapstructure:"env"`
	URL     string            `mapstructure:"url"`
	Timeout time.Duration     `mapstructure:"timeout"`
}

// Validate rejects malformed endpoint descriptors. Callers treat a failure
// here as fatal at startup.
func (e Endpoint) Validate() error {
	switch e.Kind {
	case KindStdio:
		if strings.TrimSpace(e.Command) == "" {
			return fmt.Errorf("endpoint: stdio transport requires a command")
		}
	case KindHTTP:
		if !strings.HasPrefix(e.URL, "http://") && !strings.HasPrefix(e.URL, "https://") {
			return fmt.Errorf("endpoint: http transport requires an http(s) url, got %q", e.URL)
		}
	case "":
		return fmt.Errorf("endpoint: transport kind is required (stdio or http)")
	default:
		return fmt.Errorf("endpoint: unknown transport kind %q", e.Kind)
	}
	return nil
}

func (e Endpoint) callTimeout() time.Duration {
	if e.Timeout > 0 {
		return e.Timeout
	}
	return DefaultCallTimeout
}

// Transport delivers one JSON-RPC message and returns the correlated
// response, regardless of the underlying channel.
type Transport interface {
	// RoundTrip sends a request and blocks until the correlated response
	// arrives or ctx is done.
	RoundTrip(ctx context.Context, req *Request) (*Response, error)
	// Notify sends a fire-and-forget message. No response body is awaited
	// beyond transport-level acknowledgement.
	Notify(ctx context.Context, req *Request) error
	Close() error
}

func openTransport(ctx context.Context, ep Endpoint) (Transport, error) {
	switch ep.Kind {
	case KindStdio:
		return startStdioTransport(ctx, ep)
	case KindHTTP:
		return newHTTPTransport(ep), nil
	default:
		return nil, fmt.Errorf("endpoint: unknown transport kind %q", ep.Kind)
	}
}
