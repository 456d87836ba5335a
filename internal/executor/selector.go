package executor

import (
	"context"

	"github.com/thoreinstein/cec/internal/command"
	"github.com/thoreinstein/cec/internal/platform"
)

// Bound is an Executor fixed to one platform. The shell works against it.
type Bound struct {
	exec       *Executor
	descriptor platform.Descriptor
	module     *command.Module
}

// Select binds the executor to platform. Unknown keys fail with
// KindNotFound.
func (e *Executor) Select(platformKey string) (*Bound, error) {
	d, mod, err := e.Describe(platformKey)
	if err != nil {
		return nil, err
	}
	return &Bound{exec: e, descriptor: d, module: mod}, nil
}

// Execute runs command on the bound platform.
func (b *Bound) Execute(ctx context.Context, commandName string, args command.Args) (any, error) {
	return b.exec.Execute(ctx, b.descriptor.Key, commandName, args)
}

// Descriptor returns the bound platform's descriptor.
func (b *Bound) Descriptor() platform.Descriptor {
	return b.descriptor
}

// Commands returns the platform's commands in declaration order.
func (b *Bound) Commands() []*command.Command {
	return b.module.Commands()
}

// Lookup returns the named command.
func (b *Bound) Lookup(name string) (*command.Command, bool) {
	return b.module.Lookup(name)
}
