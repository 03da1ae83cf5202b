package mcpclient

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"
)

const (
	// MaxFrameBytes caps a single line-framed message from the server.
	MaxFrameBytes = 1 << 20

	shutdownGrace = 3 * time.Second
)

// stdioTransport speaks line-oriented JSON-RPC over the pipes of a spawned
// server process. The transport is bound 1:1 to the process: Close tears the
// process down on every exit path, gracefully first, forcefully after a
// grace period.
type stdioTransport struct {
	cmd     *exec.Cmd
	in      io.WriteCloser
	lines   chan []byte
	done    chan struct{}
	timeout time.Duration

	mu        sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

func startStdioTransport(ctx context.Context, ep Endpoint) (Transport, error) {
	cmd := exec.CommandContext(ctx, ep.Command, ep.Args...)
	if len(ep.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range ep.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &TransportError{Op: "spawn", Err: err}
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &TransportError{Op: "spawn", Err: err}
	}
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, &TransportError{Op: "spawn", Err: err}
	}

	t := &stdioTransport{
		cmd:     cmd,
		in:      stdin,
		lines:   make(chan []byte, 8),
		done:    make(chan struct{}),
		timeout: ep.callTimeout(),
	}
	go t.readLoop(stdout)
	return t, nil
}

// readLoop feeds complete line frames to the lines channel until the pipe
// closes. Non-JSON lines (server chatter on stdout) are dropped.
func (t *stdioTransport) readLoop(stdout io.Reader) {
	defer close(t.lines)
	r := bufio.NewReader(stdout)
	for {
		var buf bytes.Buffer
		for {
			frag, err := r.ReadBytes('\n')
			buf.Write(frag)
			if buf.Len() > MaxFrameBytes {
				return
			}
			if err == nil {
				break
			}
			if !errors.Is(err, bufio.ErrBufferFull) {
				return
			}
		}
		line := bytes.TrimSpace(buf.Bytes())
		if len(line) == 0 || line[0] != '{' {
			continue
		}
		// The send must not outlive the transport: once nobody drains the
		// channel, only the done signal from Close lets the loop exit.
		select {
		case t.lines <- append([]byte(nil), line...):
		case <-t.done:
			return
		}
	}
}

func (t *stdioTransport) write(req *Request) error {
	b, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	b = append(b, '\n')
	if _, err := t.in.Write(b); err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	return nil
}

func (t *stdioTransport) RoundTrip(ctx context.Context, req *Request) (*Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if req.ID == nil {
		return nil, &ProtocolError{Reason: "request without id on RoundTrip"}
	}
	if err := t.write(req); err != nil {
		return nil, err
	}

	timer := time.NewTimer(t.timeout)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil, &TransportError{Op: "read", Err: ctx.Err(), Timeout: errors.Is(ctx.Err(), context.DeadlineExceeded)}
		case <-timer.C:
			return nil, &TransportError{Op: "read", Err: fmt.Errorf("no response to %s within %s", req.Method, t.timeout), Timeout: true}
		case line, ok := <-t.lines:
			if !ok {
				return nil, &TransportError{Op: "read", Err: io.EOF}
			}
			var resp Response
			if err := json.Unmarshal(line, &resp); err != nil {
				continue
			}
			// Server-initiated requests and stray notifications carry a
			// method; they are not the correlated response.
			if resp.ID == nil || *resp.ID != *req.ID {
				continue
			}
			if err := checkResponse(&resp); err != nil {
				return nil, err
			}
			return &resp, nil
		}
	}
}

func (t *stdioTransport) Notify(_ context.Context, req *Request) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.write(req)
}

// Close shuts the server down by closing its stdin and waiting, escalating
// to a kill when the process outlives the grace period.
func (t *stdioTransport) Close() error {
	t.closeOnce.Do(func() {
		close(t.done)
		_ = t.in.Close()
		done := make(chan error, 1)
		go func() { done <- t.cmd.Wait() }()
		select {
		case t.closeErr = <-done:
		case <-time.After(shutdownGrace):
			_ = t.cmd.Process.Kill()
			t.closeErr = <-done
		}
	})
	return t.closeErr
}
