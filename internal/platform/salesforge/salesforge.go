// Package salesforge is the Salesforge command catalog. Almost every
// resource is scoped to a workspace.
package salesforge

import (
	"net/http"

	"github.com/thoreinstein/cec/internal/command"
)

var (
	workspace = command.Required("workspace_id", command.TypeString, "workspace id")
	sequence  = command.Required("sequence_id", command.TypeString, "sequence id")
	paging    = []command.Field{
		command.Optional("limit", command.TypeInteger, "page size"),
		command.Optional("offset", command.TypeInteger, "rows to skip"),
	}
)

func scoped(fields ...command.Field) []command.Field {
	return append([]command.Field{workspace}, fields...)
}

// Module returns the Salesforge commands.
func Module() *command.Module {
	return command.MustModule(
		command.Command{
			Name:        "me",
			Category:    "account",
			Description: "Show the API key owner",
			Method:      http.MethodGet,
			Handler:     command.Endpoint(http.MethodGet, "/me"),
		},
		command.Command{
			Name:        "workspaces",
			Category:    "workspaces",
			Description: "List workspaces",
			Method:      http.MethodGet,
			Fields:      paging,
			Handler:     command.Endpoint(http.MethodGet, "/workspaces"),
		},
		command.Command{
			Name:        "sequences",
			Category:    "sequences",
			Description: "List sequences of a workspace",
			Method:      http.MethodGet,
			Fields:      scoped(paging...),
			Handler:     command.Endpoint(http.MethodGet, "/workspaces/{workspace_id}/sequences"),
		},
		command.Command{
			Name:        "sequence-get",
			Category:    "sequences",
			Description: "Show one sequence",
			Method:      http.MethodGet,
			Fields:      scoped(sequence),
			Handler:     command.Endpoint(http.MethodGet, "/workspaces/{workspace_id}/sequences/{sequence_id}"),
		},
		command.Command{
			Name:        "sequence-create",
			Category:    "sequences",
			Description: "Create a sequence",
			Method:      http.MethodPost,
			Fields: scoped(
				command.Required("name", command.TypeString, "sequence name"),
				command.Optional("language", command.TypeString, "e.g. american_english"),
				command.Optional("timezone", command.TypeString, "IANA zone"),
			),
			Handler: command.Endpoint(http.MethodPost, "/workspaces/{workspace_id}/sequences"),
		},
		command.Command{
			Name:        "sequence-status",
			Category:    "sequences",
			Description: "Set a sequence active or paused",
			Method:      http.MethodPut,
			Fields:      scoped(sequence, command.Required("status", command.TypeString, "active or paused")),
			Handler:     command.Endpoint(http.MethodPut, "/workspaces/{workspace_id}/sequences/{sequence_id}/status"),
		},
		command.Command{
			Name:        "contacts",
			Category:    "contacts",
			Description: "List contacts of a workspace",
			Method:      http.MethodGet,
			Fields:      scoped(paging...),
			Handler:     command.Endpoint(http.MethodGet, "/workspaces/{workspace_id}/contacts"),
		},
		command.Command{
			Name:        "contact-create",
			Category:    "contacts",
			Description: "Create a contact",
			Method:      http.MethodPost,
			Fields: scoped(
				command.Required("email", command.TypeString, ""),
				command.Optional("firstName", command.TypeString, ""),
				command.Optional("lastName", command.TypeString, ""),
				command.Optional("company", command.TypeString, ""),
			),
			Handler: command.Endpoint(http.MethodPost, "/workspaces/{workspace_id}/contacts"),
		},
		command.Command{
			Name:        "mailboxes",
			Category:    "mailboxes",
			Description: "List mailboxes of a workspace",
			Method:      http.MethodGet,
			Fields:      scoped(paging...),
			Handler:     command.Endpoint(http.MethodGet, "/workspaces/{workspace_id}/mailboxes"),
		},
	)
}
