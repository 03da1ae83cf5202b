package mcpclient

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"
)

func shellEndpoint(t *testing.T, script string) Endpoint {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stdio transport tests use /bin/sh")
	}
	return Endpoint{
		Kind:    KindStdio,
		Command: "/bin/sh",
		Args:    []string{"-c", script},
		Timeout: 5 * time.Second,
	}
}

func TestStdioRoundTrip(t *testing.T) {
	t.Parallel()

	// The fake server logs to stdout before answering; the transport must
	// skip the chatter and correlate the JSON response by id.
	script := `echo "server starting up"
read line
echo '{"jsonrpc":"2.0","id":1,"result":{"ok":true}}'`
	tr, err := startStdioTransport(context.Background(), shellEndpoint(t, script))
	if err != nil {
		t.Fatalf("startStdioTransport() error = %v", err)
	}
	defer tr.Close()

	id := int64(1)
	req, _ := newRequest(&id, methodListTools, nil)
	resp, err := tr.RoundTrip(context.Background(), req)
	if err != nil {
		t.Fatalf("RoundTrip() error = %v", err)
	}
	if string(resp.Result) != `{"ok":true}` {
		t.Fatalf("result = %s", resp.Result)
	}
}

func TestStdioServerExitIsTransportError(t *testing.T) {
	t.Parallel()

	tr, err := startStdioTransport(context.Background(), shellEndpoint(t, "read line; exit 0"))
	if err != nil {
		t.Fatalf("startStdioTransport() error = %v", err)
	}
	defer tr.Close()

	id := int64(1)
	req, _ := newRequest(&id, methodListTools, nil)
	_, err = tr.RoundTrip(context.Background(), req)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("RoundTrip() error = %v, want *TransportError", err)
	}
}

func TestStdioCloseTearsProcessDown(t *testing.T) {
	t.Parallel()

	tr, err := startStdioTransport(context.Background(), shellEndpoint(t, "cat"))
	if err != nil {
		t.Fatalf("startStdioTransport() error = %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- tr.Close() }()
	select {
	case <-done:
	case <-time.After(2 * shutdownGrace):
		t.Fatal("Close() did not return after the grace period")
	}
	// Close is idempotent.
	if err := tr.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}

func TestStdioCloseUnblocksReader(t *testing.T) {
	t.Parallel()

	// A chatty server floods stdout with frames nobody reads. Close must
	// still release the reader, observable as the lines channel closing.
	script := `i=0
while [ $i -lt 50 ]; do
  echo '{"jsonrpc":"2.0","id":99,"result":{}}'
  i=$((i+1))
done
read line
exit 0`
	tr, err := startStdioTransport(context.Background(), shellEndpoint(t, script))
	if err != nil {
		t.Fatalf("startStdioTransport() error = %v", err)
	}
	st := tr.(*stdioTransport)

	// Give the server time to fill the channel buffer and block the reader.
	time.Sleep(200 * time.Millisecond)
	if err := tr.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-st.lines:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("reader still running after Close()")
		}
	}
}

func TestStdioTimeout(t *testing.T) {
	t.Parallel()

	ep := shellEndpoint(t, "read line; sleep 30")
	ep.Timeout = 100 * time.Millisecond
	tr, err := startStdioTransport(context.Background(), ep)
	if err != nil {
		t.Fatalf("startStdioTransport() error = %v", err)
	}
	defer tr.Close()

	id := int64(1)
	req, _ := newRequest(&id, methodListTools, nil)
	_, err = tr.RoundTrip(context.Background(), req)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("RoundTrip() error = %v, want *TransportError", err)
	}
	if !te.Timeout {
		t.Fatalf("timeout not classified as such: %v", err)
	}
}
