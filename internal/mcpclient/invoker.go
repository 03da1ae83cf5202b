package mcpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// CallObserver receives one observation per tools/call round-trip, for
// metrics. A nil observer is skipped.
type CallObserver interface {
	ObserveToolCall(tool string, elapsed time.Duration, err error)
}

// Invoker is the single entry point for calling a named remote capability.
// It resolves names against a Catalog, validates arguments against the
// tool's declared schema when one is present, and decodes the structured
// payload out of the content envelope.
type Invoker struct {
	catalog  *Catalog
	logger   *log.Logger
	observer CallObserver
}

func NewInvoker(catalog *Catalog, logger *log.Logger, observer CallObserver) *Invoker {
	if logger == nil {
		logger = log.New(os.Stdout, "[MCP] ", log.LstdFlags)
	}
	return &Invoker{catalog: catalog, logger: logger, observer: observer}
}

// Tools exposes the invoker's catalog: the cached tool set, discovered on
// first use.
func (inv *Invoker) Tools(ctx context.Context, s *Session) ([]ToolDescriptor, error) {
	return inv.catalog.Tools(ctx, s)
}

// Invoke calls the named tool with the given arguments and returns the
// decoded payload of its first text content item. A result with no text
// content is a valid outcome for some tools: it is logged and returned as
// an empty map, not an error.
func (inv *Invoker) Invoke(ctx context.Context, s *Session, name string, args map[string]any) (map[string]any, error) {
	desc, err := inv.catalog.Resolve(ctx, s, name)
	if err != nil {
		return nil, err
	}
	if err := validateArgs(desc, args); err != nil {
		return nil, &ToolError{Tool: name, Err: err}
	}

	inv.logger.Printf("invoking tool %s", name)
	start := time.Now()
	res, err := s.CallTool(ctx, name, args)
	if inv.observer != nil {
		inv.observer.ObserveToolCall(name, time.Since(start), err)
	}
	if err != nil {
		return nil, &ToolError{Tool: name, Err: err}
	}

	for _, item := range res.Content {
		if item.Kind != ContentText {
			continue
		}
		var out map[string]any
		if err := json.Unmarshal([]byte(item.Text), &out); err != nil {
			return nil, &ToolError{Tool: name, Err: &ProtocolError{Reason: fmt.Sprintf("text content is not valid JSON: %v", err)}}
		}
		return out, nil
	}

	inv.logger.Printf("no text content in result from %s", name)
	return map[string]any{}, nil
}

// validateArgs checks arguments against the tool's declared input schema.
// A missing or uncompilable schema skips validation rather than failing the
// call; the server remains the authority on its own contract.
func validateArgs(desc ToolDescriptor, args map[string]any) error {
	if len(desc.InputSchema) == 0 {
		return nil
	}
	sch, err := jsonschema.CompileString(desc.Name+".schema.json", string(desc.InputSchema))
	if err != nil {
		return nil
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("marshal arguments: %w", err)
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("decode arguments: %w", err)
	}
	if err := sch.Validate(decoded); err != nil {
		return fmt.Errorf("arguments do not satisfy declared schema: %w", err)
	}
	return nil
}
