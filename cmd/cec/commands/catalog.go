package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/cec/internal/command"
	"github.com/thoreinstein/cec/internal/platform"
)

var commandsJSON bool

func init() {
	commandsCmd.Flags().BoolVar(&commandsJSON, "json", false,
		"output as JSON")
	rootCmd.AddCommand(commandsCmd)
}

var commandsCmd = &cobra.Command{
	Use:   "commands <platform>",
	Short: "List the commands of a platform",
	Long: `List every command a platform supports, grouped by category, with its
HTTP method and required fields. Destructive commands are marked with "!".`,
	Example: `  cec commands smartlead
  cec commands apollo --json

See Also: cec exec, cec platforms`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completePlatforms,
	RunE:              runCommands,
}

type fieldInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

type commandInfo struct {
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Method      string      `json:"method"`
	Destructive bool        `json:"destructive,omitempty"`
	Fields      []fieldInfo `json:"fields"`
}

func runCommands(cmd *cobra.Command, args []string) error {
	d, err := platform.Default().Get(args[0])
	if err != nil {
		return err
	}
	cmds := d.Module().Commands()

	if commandsJSON {
		infos := make([]commandInfo, 0, len(cmds))
		for _, c := range cmds {
			infos = append(infos, toCommandInfo(c))
		}
		return writeJSON(cmd.OutOrStdout(), infos)
	}

	rows := make([][]string, 0, len(cmds))
	for _, c := range cmds {
		name := c.Name
		if c.Destructive {
			name += " !"
		}
		required := strings.Join(c.Required(), ", ")
		if required == "" {
			required = "-"
		}
		rows = append(rows, []string{c.Category, name, c.Method, required, c.Description})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d commands in %d categories\n", d.DisplayName, len(cmds), len(d.Module().Categories()))
	fmt.Fprintln(out, renderTable([]string{"CATEGORY", "COMMAND", "METHOD", "REQUIRED", "DESCRIPTION"}, rows, nil))
	return nil
}

func toCommandInfo(c *command.Command) commandInfo {
	fields := make([]fieldInfo, 0, len(c.Fields))
	for _, f := range c.Fields {
		fields = append(fields, fieldInfo{
			Name:        f.Name,
			Type:        f.Type.String(),
			Required:    f.Required,
			Description: f.Description,
		})
	}
	return commandInfo{
		Name:        c.Name,
		Category:    c.Category,
		Description: c.Description,
		Method:      c.Method,
		Destructive: c.Destructive,
		Fields:      fields,
	}
}
