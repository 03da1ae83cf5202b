package mcpclient

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

const (
	sessionIDHeader = "Mcp-Session-Id"
	acceptHeader    = "application/json, text/event-stream"
)

// httpTransport speaks JSON-RPC over HTTP POST. A single request may come
// back as a plain JSON body or as a text/event-stream framing the response
// in `data:` lines. The server may hand out a session token on the first
// response, which is echoed on every later request by this transport.
type httpTransport struct {
	url    string
	client *http.Client

	mu        sync.Mutex
	sessionID string
}

func newHTTPTransport(ep Endpoint) *httpTransport {
	return &httpTransport{
		url:    ep.URL,
		client: &http.Client{Timeout: ep.callTimeout()},
	}
}

func (t *httpTransport) post(ctx context.Context, req *Request) (*http.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Op: "post", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", acceptHeader)
	t.mu.Lock()
	if t.sessionID != "" {
		httpReq.Header.Set(sessionIDHeader, t.sessionID)
	}
	t.mu.Unlock()

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Op: "post", Err: err, Timeout: isTimeout(err)}
	}

	// First response may carry the session token for this conversation.
	if sid := resp.Header.Get(sessionIDHeader); sid != "" {
		t.mu.Lock()
		if t.sessionID == "" {
			t.sessionID = sid
		}
		t.mu.Unlock()
	}
	return resp, nil
}

func (t *httpTransport) RoundTrip(ctx context.Context, req *Request) (*Response, error) {
	httpResp, err := t.post(ctx, req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return nil, &TransportError{
			Op:  "post",
			Err: fmt.Errorf("server returned HTTP %d: %s", httpResp.StatusCode, strings.TrimSpace(string(snippet))),
		}
	}

	var resp *Response
	ct := httpResp.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "text/event-stream") {
		resp, err = decodeEventStream(httpResp.Body)
	} else {
		resp = &Response{}
		err = json.NewDecoder(httpResp.Body).Decode(resp)
		if err != nil {
			err = &ProtocolError{Reason: fmt.Sprintf("malformed response body: %v", err)}
		}
	}
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (t *httpTransport) Notify(ctx context.Context, req *Request) error {
	httpResp, err := t.post(ctx, req)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()
	_, _ = io.Copy(io.Discard, httpResp.Body)
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return &TransportError{Op: "post", Err: fmt.Errorf("server returned HTTP %d", httpResp.StatusCode)}
	}
	return nil
}

// Close discards the session token. Any pending request is abandoned by
// cancelling its context; there is no server-side cancellation protocol.
func (t *httpTransport) Close() error {
	t.mu.Lock()
	t.sessionID = ""
	t.mu.Unlock()
	t.client.CloseIdleConnections()
	return nil
}

// decodeEventStream takes the first `data:` frame that decodes as valid
// JSON as the logical response.
func decodeEventStream(body io.Reader) (*Response, error) {
	sc := bufio.NewScanner(body)
	sc.Buffer(make([]byte, 0, 64*1024), MaxFrameBytes)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}
		var resp Response
		if err := json.Unmarshal([]byte(data), &resp); err != nil {
			continue
		}
		return &resp, nil
	}
	if err := sc.Err(); err != nil {
		return nil, &TransportError{Op: "read", Err: err}
	}
	return nil, &ProtocolError{Reason: "no decodable JSON frame in event stream"}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}
