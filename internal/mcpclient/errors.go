package mcpclient

import (
	"fmt"
	"strings"
)

// TransportError wraps a failure of the underlying channel: spawn failure,
// broken pipe, connection refused, or a bounded wait expiring. Timeout is set
// when the wait expired so callers can tell a slow server from a broken one.
type TransportError struct {
	Op      string
	Err     error
	Timeout bool
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("transport %s: timeout: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError reports a response that is syntactically JSON but does not
// satisfy the JSON-RPC 2.0 envelope contract.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string { return "protocol: " + e.Reason }

// ToolNotFoundError is returned when a requested tool is absent from the
// server catalog. Known carries the names that are present, for diagnosis.
type ToolNotFoundError struct {
	Name  string
	Known []string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("tool %q not found on server, available: [%s]", e.Name, strings.Join(e.Known, ", "))
}

// ToolError attaches the originating tool name to a transport or protocol
// failure raised during invocation.
type ToolError struct {
	Tool string
	Err  error
}

func (e *ToolError) Error() string { return fmt.Sprintf("tool %q: %v", e.Tool, e.Err) }

func (e *ToolError) Unwrap() error { return e.Err }
