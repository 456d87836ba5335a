// Package command defines the platform-agnostic command model: declared
// argument fields, handlers, and the per-platform Module that maps command
// names to them.
package command

import (
	"context"
	"net/http"
)

// Client is the narrow view of an API client that handlers use.
// *api.Client satisfies it; tests substitute spies.
type Client interface {
	Request(ctx context.Context, method, path string, body any) (any, error)
}

// Args is the decoded argument object passed to a command.
type Args map[string]any

// Handler implements one command against a platform client. Handlers are
// stateless and may run concurrently for different commands.
type Handler func(ctx context.Context, client Client, args Args) (any, error)

// Command describes one named operation of a platform.
type Command struct {
	// Name is unique within the platform (e.g. "campaign-create").
	Name string

	// Category groups commands in listings (e.g. "campaigns").
	Category string

	Description string

	// Method is the HTTP method the command issues. It decides whether the
	// command is an idempotent read eligible for a retry.
	Method string

	// Destructive commands delete or stop something; presentation layers
	// confirm them before calling the executor.
	Destructive bool

	Fields  []Field
	Handler Handler
}

// Idempotent reports whether the command is a read that can be repeated
// without side effects.
func (c *Command) Idempotent() bool {
	return c.Method == http.MethodGet || c.Method == http.MethodHead
}

// Required returns the names of the required fields in declaration order.
func (c *Command) Required() []string {
	var names []string
	for _, f := range c.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}
