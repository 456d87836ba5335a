package command

import (
	"sort"

	"github.com/thoreinstein/cec/internal/errors"
)

// Sentinel errors for module construction.
var (
	// ErrDuplicateCommand is returned when two commands share a name.
	ErrDuplicateCommand = errors.New("duplicate command")

	// ErrInvalidCommand is returned for a command without a name or handler.
	ErrInvalidCommand = errors.New("invalid command")
)

// Module is the immutable command catalog of one platform.
type Module struct {
	commands map[string]*Command
	order    []string
}

// NewModule builds a Module from cmds, preserving their order for listings.
func NewModule(cmds ...Command) (*Module, error) {
	m := &Module{
		commands: make(map[string]*Command, len(cmds)),
		order:    make([]string, 0, len(cmds)),
	}
	for i := range cmds {
		c := cmds[i]
		if c.Name == "" || c.Handler == nil || c.Method == "" {
			return nil, errors.Wrapf(ErrInvalidCommand, "command #%d %q", i, c.Name)
		}
		if _, exists := m.commands[c.Name]; exists {
			return nil, errors.Wrapf(ErrDuplicateCommand, "%q", c.Name)
		}
		m.commands[c.Name] = &c
		m.order = append(m.order, c.Name)
	}
	return m, nil
}

// MustModule is like NewModule but panics on error. It is meant for the
// static catalogs, where a bad table is a programming error.
func MustModule(cmds ...Command) *Module {
	m, err := NewModule(cmds...)
	if err != nil {
		panic(err)
	}
	return m
}

// Lookup returns the command called name.
func (m *Module) Lookup(name string) (*Command, bool) {
	c, ok := m.commands[name]
	return c, ok
}

// Commands returns all commands in declaration order.
func (m *Module) Commands() []*Command {
	out := make([]*Command, len(m.order))
	for i, name := range m.order {
		out[i] = m.commands[name]
	}
	return out
}

// Names returns the sorted command names.
func (m *Module) Names() []string {
	names := make([]string, len(m.order))
	copy(names, m.order)
	sort.Strings(names)
	return names
}

// Categories returns the distinct categories in first-seen order.
func (m *Module) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, name := range m.order {
		cat := m.commands[name].Category
		if !seen[cat] {
			seen[cat] = true
			cats = append(cats, cat)
		}
	}
	return cats
}

// Len returns the number of commands.
func (m *Module) Len() int {
	return len(m.order)
}
