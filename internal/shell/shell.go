// Package shell is the interactive command loop bound to one platform.
package shell

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/thoreinstein/cec/internal/api"
	"github.com/thoreinstein/cec/internal/cli/prompt"
	"github.com/thoreinstein/cec/internal/command"
	"github.com/thoreinstein/cec/internal/errors"
	"github.com/thoreinstein/cec/internal/platform"
)

// Session is the platform-bound executor the shell drives.
// *executor.Bound implements it.
type Session interface {
	Execute(ctx context.Context, commandName string, args command.Args) (any, error)
	Descriptor() platform.Descriptor
	Commands() []*command.Command
	Lookup(name string) (*command.Command, bool)
}

// Shell reads commands from In and writes results to Out until exit, quit
// or end of input. It holds no connection between commands.
type Shell struct {
	Session Session
	In      io.Reader
	Out     io.Writer

	// Confirm is asked before destructive commands. When nil they are
	// refused.
	Confirm prompt.Confirmer

	// Spinner, when set, runs while a command executes.
	Spinner Progress

	// Pick backs the pick builtin. When nil, pick is unavailable.
	Pick Picker
}

// Run executes the loop. It returns nil on exit or EOF, and ctx.Err() if the
// context ends between commands.
func (s *Shell) Run(ctx context.Context) error {
	in, ok := s.In.(*bufio.Reader)
	if !ok {
		in = bufio.NewReader(s.In)
	}

	d := s.Session.Descriptor()
	fmt.Fprintf(s.Out, "%s: %d commands in %d categories. Type 'help' for help, 'exit' to quit.\n",
		d.DisplayName, d.CommandCount, d.CategoryCount)
	promptText := fmt.Sprintf("cec:%s> ", d.Key)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.Out, promptText)
		line, err := in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			fmt.Fprintln(s.Out)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return errors.Wrap(err, "reading input")
		}

		if done := s.handle(ctx, in, strings.TrimSpace(line)); done {
			return nil
		}
	}
}

// handle runs one input line and reports whether the loop should stop.
func (s *Shell) handle(ctx context.Context, in *bufio.Reader, line string) bool {
	if line == "" || strings.HasPrefix(line, "#") {
		return false
	}

	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case "exit", "quit":
		return true
	case "help", "?":
		s.help(rest)
	case "ls", "list":
		s.list(rest)
	case "pick":
		s.pick(ctx, in)
	default:
		s.run(ctx, name, rest)
	}
	return false
}

func (s *Shell) help(topic string) {
	if topic != "" {
		if c, ok := s.Session.Lookup(topic); ok {
			fmt.Fprint(s.Out, describe(c))
			return
		}
		s.printError(api.NotFound("unknown command %q", topic))
		return
	}

	fmt.Fprint(s.Out, `Commands:
  ls [category]            list commands, optionally of one category
  help <command>           show a command's arguments
  <command> [args]         run a command; args are key=value pairs or one JSON object
  pick                     choose a command with a fuzzy finder
  exit, quit               leave the shell
`)
}

func (s *Shell) list(category string) {
	var current string
	found := false
	for _, c := range s.Session.Commands() {
		if category != "" && c.Category != category {
			continue
		}
		found = true
		if c.Category != current {
			current = c.Category
			fmt.Fprintf(s.Out, "%s:\n", current)
		}
		mark := ""
		if c.Destructive {
			mark = " [destructive]"
		}
		fmt.Fprintf(s.Out, "  %-22s %s%s\n", c.Name, c.Description, mark)
	}
	if !found {
		s.printError(api.NotFound("unknown category %q", category))
	}
}

func (s *Shell) pick(ctx context.Context, in *bufio.Reader) {
	if s.Pick == nil {
		fmt.Fprintln(s.Out, "pick needs an interactive terminal; use ls instead")
		return
	}

	c, err := s.Pick(s.Session.Commands())
	if errors.Is(err, ErrPickAborted) {
		return
	}
	if err != nil {
		s.printError(err)
		return
	}

	args := ""
	if len(c.Fields) > 0 {
		fmt.Fprintf(s.Out, "%s args: ", c.Name)
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(s.Out)
			return
		}
		args = strings.TrimSpace(line)
	}
	s.run(ctx, c.Name, args)
}

func (s *Shell) run(ctx context.Context, name, rawArgs string) {
	c, known := s.Session.Lookup(name)

	var fields []command.Field
	if known {
		fields = c.Fields
	}
	args, err := ParseArgs(rawArgs, fields)
	if err != nil {
		s.printError(err)
		return
	}

	if known && c.Destructive {
		ok := false
		if s.Confirm != nil {
			ok, err = s.Confirm(fmt.Sprintf("%s is destructive. Run it?", name))
		}
		if err != nil && !errors.Is(err, prompt.ErrSelectionCancelled) {
			s.printError(err)
			return
		}
		if !ok {
			fmt.Fprintln(s.Out, "cancelled")
			return
		}
	}

	if s.Spinner != nil {
		s.Spinner.Start()
	}
	result, err := s.Session.Execute(ctx, name, args)
	if s.Spinner != nil {
		s.Spinner.Stop()
	}

	if err != nil {
		s.printError(err)
		return
	}
	s.printResult(result)
}

func (s *Shell) printResult(result any) {
	switch v := result.(type) {
	case nil:
		fmt.Fprintln(s.Out, "ok")
	case string:
		fmt.Fprintln(s.Out, v)
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			fmt.Fprintf(s.Out, "%v\n", v)
			return
		}
		fmt.Fprintln(s.Out, string(data))
	}
}

func (s *Shell) printError(err error) {
	e := api.AsError(err)
	msg := e.Message
	if e.Kind == api.KindHTTPStatus {
		msg = fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	fmt.Fprintf(s.Out, "error[%s]: %s\n", e.Kind, msg)
}
