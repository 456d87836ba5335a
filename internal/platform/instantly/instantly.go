// Package instantly is the Instantly (API v2) command catalog.
package instantly

import (
	"net/http"

	"github.com/thoreinstein/cec/internal/command"
)

var id = command.Required("id", command.TypeString, "campaign id")

var cursor = []command.Field{
	command.Optional("limit", command.TypeInteger, "page size (1-100)"),
	command.Optional("starting_after", command.TypeString, "cursor from the previous page"),
}

// Module returns the Instantly commands.
func Module() *command.Module {
	return command.MustModule(
		command.Command{
			Name:        "campaigns",
			Category:    "campaigns",
			Description: "List campaigns",
			Method:      http.MethodGet,
			Fields:      append([]command.Field{command.Optional("search", command.TypeString, "name filter")}, cursor...),
			Handler:     command.Endpoint(http.MethodGet, "/campaigns"),
		},
		command.Command{
			Name:        "campaign-get",
			Category:    "campaigns",
			Description: "Show one campaign",
			Method:      http.MethodGet,
			Fields:      []command.Field{id},
			Handler:     command.Endpoint(http.MethodGet, "/campaigns/{id}"),
		},
		command.Command{
			Name:        "campaign-create",
			Category:    "campaigns",
			Description: "Create a campaign",
			Method:      http.MethodPost,
			Fields: []command.Field{
				command.Required("name", command.TypeString, "campaign name"),
				command.Required("campaign_schedule", command.TypeObject, "sending schedule"),
				command.Optional("email_list", command.TypeArray, "sending accounts"),
				command.Optional("daily_limit", command.TypeInteger, "emails per day"),
			},
			Handler: command.Endpoint(http.MethodPost, "/campaigns"),
		},
		command.Command{
			Name:        "campaign-activate",
			Category:    "campaigns",
			Description: "Activate or resume a campaign",
			Method:      http.MethodPost,
			Fields:      []command.Field{id},
			Handler:     command.Endpoint(http.MethodPost, "/campaigns/{id}/activate"),
		},
		command.Command{
			Name:        "campaign-pause",
			Category:    "campaigns",
			Description: "Pause a campaign",
			Method:      http.MethodPost,
			Fields:      []command.Field{id},
			Handler:     command.Endpoint(http.MethodPost, "/campaigns/{id}/pause"),
		},
		command.Command{
			Name:        "campaign-delete",
			Category:    "campaigns",
			Description: "Delete a campaign",
			Method:      http.MethodDelete,
			Destructive: true,
			Fields:      []command.Field{id},
			Handler:     command.Endpoint(http.MethodDelete, "/campaigns/{id}"),
		},
		command.Command{
			// Instantly lists leads with a POST search; it is not retried.
			Name:        "leads-list",
			Category:    "leads",
			Description: "Search leads",
			Method:      http.MethodPost,
			Fields:      append([]command.Field{command.Optional("campaign", command.TypeString, "campaign id")}, cursor...),
			Handler:     command.Endpoint(http.MethodPost, "/leads/list"),
		},
		command.Command{
			Name:        "lead-create",
			Category:    "leads",
			Description: "Create a lead",
			Method:      http.MethodPost,
			Fields: []command.Field{
				command.Required("email", command.TypeString, "lead email"),
				command.Optional("campaign", command.TypeString, "campaign id"),
				command.Optional("first_name", command.TypeString, ""),
				command.Optional("last_name", command.TypeString, ""),
				command.Optional("company_name", command.TypeString, ""),
			},
			Handler: command.Endpoint(http.MethodPost, "/leads"),
		},
		command.Command{
			Name:        "accounts",
			Category:    "accounts",
			Description: "List sending accounts",
			Method:      http.MethodGet,
			Fields:      cursor,
			Handler:     command.Endpoint(http.MethodGet, "/accounts"),
		},
		command.Command{
			Name:        "analytics",
			Category:    "analytics",
			Description: "Campaign analytics",
			Method:      http.MethodGet,
			Fields: []command.Field{
				command.Optional("id", command.TypeString, "campaign id; all campaigns when omitted"),
				command.Optional("start_date", command.TypeString, "YYYY-MM-DD"),
				command.Optional("end_date", command.TypeString, "YYYY-MM-DD"),
			},
			Handler: command.Endpoint(http.MethodGet, "/campaigns/analytics"),
		},
	)
}
