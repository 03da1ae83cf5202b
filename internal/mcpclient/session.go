package mcpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// MCP wire constants.
const (
	ProtocolVersion = "2024-11-05"

	methodInitialize  = "initialize"
	methodInitialized = "notifications/initialized"
	methodListTools   = "tools/list"
	methodCallTool    = "tools/call"

	clientName    = "talentsift"
	clientVersion = "0.1.0"
)

// Session is one handshake-bound conversation with an MCP server. It owns
// the message-id sequence (strictly increasing from 1, never reused) and the
// underlying transport. A session is not safe for concurrent calls;
// concurrent pipelines each dial their own.
type Session struct {
	transport Transport
	logger    *log.Logger
	nextID    int64
}

// NewSession wraps an already-open transport. Most callers use Dial instead.
func NewSession(t Transport, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(os.Stdout, "[MCP] ", log.LstdFlags)
	}
	return &Session{transport: t, logger: logger}
}

// Dial opens a transport for the endpoint and performs the initialize
// handshake. On handshake failure the transport is torn down and the caller
// must dial a fresh session rather than retry this one.
func Dial(ctx context.Context, ep Endpoint, logger *log.Logger) (*Session, error) {
	t, err := openTransport(ctx, ep)
	if err != nil {
		return nil, err
	}
	s := NewSession(t, logger)
	if _, err := s.Initialize(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) allocID() *int64 {
	s.nextID++
	id := s.nextID
	return &id
}

// Call sends a request and returns the raw result, converting a
// server-reported error object into a ServerError.
func (s *Session) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	req, err := newRequest(s.allocID(), method, params)
	if err != nil {
		return nil, err
	}
	resp, err := s.transport.RoundTrip(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.Result, nil
}

// Notify sends a fire-and-forget notification (no id, no response).
func (s *Session) Notify(ctx context.Context, method string, params any) error {
	req, err := newRequest(nil, method, params)
	if err != nil {
		return err
	}
	return s.transport.Notify(ctx, req)
}

type clientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type initializeParams struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities"`
	ClientInfo      clientInfo     `json:"clientInfo"`
}

// InitializeResult carries the server's advertised identity and capabilities.
type InitializeResult struct {
	ProtocolVersion string          `json:"protocolVersion"`
	Capabilities    json.RawMessage `json:"capabilities"`
	ServerInfo      clientInfo      `json:"serverInfo"`
}

// Initialize performs the handshake: the initialize request followed by the
// initialized notification. A failed notification is logged but non-fatal;
// some servers complete the handshake without the acknowledgement.
func (s *Session) Initialize(ctx context.Context) (*InitializeResult, error) {
	raw, err := s.Call(ctx, methodInitialize, initializeParams{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    map[string]any{},
		ClientInfo:      clientInfo{Name: clientName, Version: clientVersion},
	})
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	var res InitializeResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, &ProtocolError{Reason: fmt.Sprintf("malformed initialize result: %v", err)}
	}
	if err := s.Notify(ctx, methodInitialized, nil); err != nil {
		s.logger.Printf("initialized notification failed (continuing): %v", err)
	}
	return &res, nil
}

// ToolDescriptor is one entry of the server's tool catalog.
type ToolDescriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
}

type listToolsResult struct {
	Tools []ToolDescriptor `json:"tools"`
}

// ListTools performs the discovery round-trip. Callers normally go through
// a Catalog, which caches the result for the process lifetime.
func (s *Session) ListTools(ctx context.Context) ([]ToolDescriptor, error) {
	raw, err := s.Call(ctx, methodListTools, nil)
	if err != nil {
		return nil, err
	}
	var res listToolsResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, &ProtocolError{Reason: fmt.Sprintf("malformed tools/list result: %v", err)}
	}
	if res.Tools == nil {
		return nil, &ProtocolError{Reason: "tools/list result missing tools"}
	}
	return res.Tools, nil
}

type callToolParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ContentItem is one entry of a tool result. The wire format is open-ended;
// items are decoded into an explicit variant: text-bearing or other.
type ContentItem struct {
	Kind string
	Text string
}

const (
	ContentText  = "text"
	ContentOther = "other"
)

func (c *ContentItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type == ContentText {
		c.Kind = ContentText
		c.Text = raw.Text
	} else {
		c.Kind = ContentOther
	}
	return nil
}

// CallToolResult is the envelope tools/call wraps tool output in.
type CallToolResult struct {
	Content []ContentItem `json:"content"`
}

// CallTool sends a tools/call request. Resolution against the catalog and
// payload decoding live in the Invoker.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (*CallToolResult, error) {
	if args == nil {
		args = map[string]any{}
	}
	raw, err := s.Call(ctx, methodCallTool, callToolParams{Name: name, Arguments: args})
	if err != nil {
		return nil, err
	}
	var res CallToolResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, &ProtocolError{Reason: fmt.Sprintf("malformed tools/call result: %v", err)}
	}
	return &res, nil
}

// Close releases the transport: the spawned process is torn down for stdio,
// the session token discarded for HTTP.
func (s *Session) Close() error {
	return s.transport.Close()
}
