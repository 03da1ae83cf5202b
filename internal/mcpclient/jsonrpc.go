package mcpclient

import (
	"encoding/json"
	"fmt"
)

// Version is the JSON-RPC protocol version spoken on both transports.
const Version = "2.0"

// Request is an outbound JSON-RPC request or, when ID is nil, a notification.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *int64          `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is an inbound JSON-RPC response envelope. Exactly one of Result
// and Error is populated on a well-formed response.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *int64          `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *ServerError    `json:"error,omitempty"`
}

// ServerError is the error object a server attaches to a failed call.
type ServerError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Code, e.Message)
}

func newRequest(id *int64, method string, params any) (*Request, error) {
	req := &Request{JSONRPC: Version, ID: id, Method: method}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("marshal params for %s: %w", method, err)
		}
		req.Params = raw
	}
	return req, nil
}

// checkResponse validates the envelope shape shared by both transports.
func checkResponse(resp *Response) error {
	if resp.JSONRPC != Version {
		return &ProtocolError{Reason: fmt.Sprintf("unexpected jsonrpc version %q", resp.JSONRPC)}
	}
	if resp.Error != nil && len(resp.Result) > 0 {
		return &ProtocolError{Reason: "response carries both result and error"}
	}
	if resp.Error == nil && len(resp.Result) == 0 {
		return &ProtocolError{Reason: "response carries neither result nor error"}
	}
	return nil
}
