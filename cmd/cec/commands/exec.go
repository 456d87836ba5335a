package commands

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/cec/internal/api"
	"github.com/thoreinstein/cec/internal/cli/prompt"
	"github.com/thoreinstein/cec/internal/command"
	"github.com/thoreinstein/cec/internal/errors"
	"github.com/thoreinstein/cec/internal/shell"
)

var (
	execArgs string
	execYes  bool
)

// confirm asks before a destructive command runs. Tests replace it.
var confirm prompt.Confirmer = prompt.SurveyConfirm

func init() {
	execCmd.Flags().StringVar(&execArgs, "args", "",
		"command arguments as a JSON object")
	execCmd.Flags().BoolVarP(&execYes, "yes", "y", false,
		"run destructive commands without asking")
	rootCmd.AddCommand(execCmd)
}

var execCmd = &cobra.Command{
	Use:   "exec <platform> <command> [key=value...]",
	Short: "Run one platform command and print the result",
	Long: `Run a single command against a platform and print the decoded response as
JSON.

Arguments are given as a JSON object with --args, as key=value pairs after
the command name, or both (pairs win). Values of key=value pairs are parsed
as JSON when possible, so limit=10 is a number and tags='["a","b"]' an
array.

Destructive commands (deletes, pauses) ask for confirmation on a terminal
and fail otherwise unless --yes is given.`,
	Example: `  cec exec smartlead campaigns
  cec exec smartlead campaign-get campaign_id=42
  cec exec instantly lead-create --args '{"email":"ada@example.com"}'
  cec exec lemlist lead-delete campaign_id=cam_1 email=ada@example.com --yes

See Also: cec commands, cec platforms`,
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completeExec,
	RunE:              runExec,
}

func runExec(cmd *cobra.Command, args []string) error {
	key, name := args[0], args[1]

	exec := newExecutor(openStore(key))
	bound, err := exec.Select(key)
	if err != nil {
		return err
	}
	c, ok := bound.Lookup(name)
	if !ok {
		// Let the executor produce the uniform unknown-command error.
		_, err := bound.Execute(cmd.Context(), name, nil)
		return err
	}

	cmdArgs, err := parseExecArgs(c, execArgs, args[2:])
	if err != nil {
		return api.AsError(err).WithOperation(key, name)
	}

	if c.Destructive && !execYes {
		if err := confirmDestructive(cmd, key, c); err != nil {
			return err
		}
	}

	result, err := bound.Execute(cmd.Context(), name, cmdArgs)
	if err != nil {
		return err
	}
	return printResult(cmd, result)
}

func parseExecArgs(c *command.Command, raw string, pairs []string) (command.Args, error) {
	out := command.Args{}
	if strings.TrimSpace(raw) != "" {
		v, err := command.DecodeValue([]byte(raw))
		if err != nil {
			return nil, api.Validation("--args must be a JSON object: %v", err)
		}
		switch obj := v.(type) {
		case map[string]any:
			out = obj
		case nil:
		default:
			return nil, api.Validation("--args must be a JSON object, got %T", v)
		}
	}
	if len(pairs) > 0 {
		extra, err := shell.ParseArgs(shellquote.Join(pairs...), c.Fields)
		if err != nil {
			return nil, err
		}
		for k, v := range extra {
			out[k] = v
		}
	}
	return out, nil
}

func confirmDestructive(cmd *cobra.Command, key string, c *command.Command) error {
	if !interactive(cmd.InOrStdin(), cmd.ErrOrStderr()) {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrCancelled, "%s %s is destructive", key, c.Name),
			"Re-run with --yes to confirm")
	}
	ok, err := confirm(fmt.Sprintf("%s: %s. Continue?", c.Name, c.Description))
	if err != nil {
		return errors.NewUserError(errors.Wrap(errors.ErrCancelled, err.Error()), "")
	}
	if !ok {
		return errors.NewUserError(errors.ErrCancelled, "")
	}
	return nil
}

func printResult(cmd *cobra.Command, result any) error {
	out := cmd.OutOrStdout()
	switch v := result.(type) {
	case nil:
		fmt.Fprintln(out, "ok")
		return nil
	case string:
		fmt.Fprintln(out, v)
		return nil
	default:
		return writeJSON(out, v)
	}
}

func completeExec(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return completePlatforms(nil, nil, "")
	case 1:
		_, mod, err := newExecutor(openStore("")).Describe(args[0])
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return mod.Names(), cobra.ShellCompDirectiveNoFileComp
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}
