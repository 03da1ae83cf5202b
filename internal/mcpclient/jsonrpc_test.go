package mcpclient

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestRequestEncoding(t *testing.T) {
	t.Parallel()

	id := int64(7)
	req, err := newRequest(&id, "tools/list", nil)
	if err != nil {
		t.Fatalf("newRequest() error = %v", err)
	}
	b, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	for _, want := range []string{`"jsonrpc":"2.0"`, `"id":7`, `"method":"tools/list"`} {
		if !strings.Contains(s, want) {
			t.Fatalf("request %s missing %s", s, want)
		}
	}
	if strings.Contains(s, `"params"`) {
		t.Fatalf("request %s should omit params when nil", s)
	}
}

func TestNotificationOmitsID(t *testing.T) {
	t.Parallel()

	req, err := newRequest(nil, "notifications/initialized", nil)
	if err != nil {
		t.Fatalf("newRequest() error = %v", err)
	}
	b, _ := json.Marshal(req)
	if strings.Contains(string(b), `"id"`) {
		t.Fatalf("notification %s must not carry an id", b)
	}
}

func TestCheckResponse(t *testing.T) {
	t.Parallel()

	id := int64(1)
	tests := []struct {
		name    string
		resp    Response
		wantErr bool
	}{
		{
			name: "result only",
			resp: Response{JSONRPC: "2.0", ID: &id, Result: json.RawMessage(`{}`)},
		},
		{
			name: "error only",
			resp: Response{JSONRPC: "2.0", ID: &id, Error: &ServerError{Code: -32000, Message: "boom"}},
		},
		{
			name:    "wrong version",
			resp:    Response{JSONRPC: "1.0", ID: &id, Result: json.RawMessage(`{}`)},
			wantErr: true,
		},
		{
			name:    "both result and error",
			resp:    Response{JSONRPC: "2.0", ID: &id, Result: json.RawMessage(`{}`), Error: &ServerError{Code: 1, Message: "x"}},
			wantErr: true,
		},
		{
			name:    "neither result nor error",
			resp:    Response{JSONRPC: "2.0", ID: &id},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := checkResponse(&tt.resp)
			if (err != nil) != tt.wantErr {
				t.Fatalf("checkResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var pe *ProtocolError
				if !errors.As(err, &pe) {
					t.Fatalf("checkResponse() error = %T, want *ProtocolError", err)
				}
			}
		})
	}
}
