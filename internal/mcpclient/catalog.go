package mcpclient

import (
	"context"
	"sync"
)

// ToolLister is the discovery slice of a Session, split out so the catalog
// can be exercised against fakes.
type ToolLister interface {
	ListTools(ctx context.Context) ([]ToolDescriptor, error)
}

// Catalog caches the server's tool set for the lifetime of the hosting
// process. Population is lazy and all-or-nothing: a failed discovery leaves
// the cache empty and the next lookup retries from scratch. The catalog is
// an explicit, injectable object so tests can construct isolated instances.
type Catalog struct {
	mu     sync.Mutex
	tools  []ToolDescriptor
	loaded bool
}

func NewCatalog() *Catalog {
	return &Catalog{}
}

func (c *Catalog) load(ctx context.Context, lister ToolLister) error {
	if c.loaded {
		return nil
	}
	tools, err := lister.ListTools(ctx)
	if err != nil {
		return err
	}
	c.tools = tools
	c.loaded = true
	return nil
}

// Tools returns the cached catalog, performing the discovery round-trip on
// first use. The returned slice is shared; callers must not mutate it.
func (c *Catalog) Tools(ctx context.Context, lister ToolLister) ([]ToolDescriptor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx, lister); err != nil {
		return nil, err
	}
	return c.tools, nil
}

// Resolve looks a tool up by exact name, triggering discovery first when the
// cache is empty. An unknown name yields a ToolNotFoundError listing what
// the server does offer.
func (c *Catalog) Resolve(ctx context.Context, lister ToolLister, name string) (ToolDescriptor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx, lister); err != nil {
		return ToolDescriptor{}, err
	}
	for _, t := range c.tools {
		if t.Name == name {
			return t, nil
		}
	}
	known := make([]string, 0, len(c.tools))
	for _, t := range c.tools {
		known = append(known, t.Name)
	}
	return ToolDescriptor{}, &ToolNotFoundError{Name: name, Known: known}
}
