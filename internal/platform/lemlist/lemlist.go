// Package lemlist is the lemlist command catalog.
package lemlist

import (
	"net/http"

	"github.com/thoreinstein/cec/internal/command"
)

var (
	campaign = command.Required("campaign_id", command.TypeString, "campaign id")
	email    = command.Required("email", command.TypeString, "lead email")
)

// Module returns the lemlist commands.
func Module() *command.Module {
	return command.MustModule(
		command.Command{
			Name:        "team",
			Category:    "team",
			Description: "Show the team owning the API key",
			Method:      http.MethodGet,
			Handler:     command.Endpoint(http.MethodGet, "/team"),
		},
		command.Command{
			Name:        "campaigns",
			Category:    "campaigns",
			Description: "List campaigns",
			Method:      http.MethodGet,
			Fields: []command.Field{
				command.Optional("offset", command.TypeInteger, ""),
				command.Optional("limit", command.TypeInteger, ""),
			},
			Handler: command.Endpoint(http.MethodGet, "/campaigns"),
		},
		command.Command{
			Name:        "campaign-create",
			Category:    "campaigns",
			Description: "Create a campaign",
			Method:      http.MethodPost,
			Fields:      []command.Field{command.Required("name", command.TypeString, "campaign name")},
			Handler:     command.Endpoint(http.MethodPost, "/campaigns"),
		},
		command.Command{
			Name:        "campaign-pause",
			Category:    "campaigns",
			Description: "Pause a running campaign",
			Method:      http.MethodPost,
			Fields:      []command.Field{campaign},
			Handler:     command.Endpoint(http.MethodPost, "/campaigns/{campaign_id}/pause"),
		},
		command.Command{
			Name:        "lead-add",
			Category:    "leads",
			Description: "Add a lead to a campaign",
			Method:      http.MethodPost,
			Fields: []command.Field{
				campaign,
				email,
				command.Optional("firstName", command.TypeString, ""),
				command.Optional("lastName", command.TypeString, ""),
				command.Optional("companyName", command.TypeString, ""),
			},
			Handler: command.Endpoint(http.MethodPost, "/campaigns/{campaign_id}/leads/{email}"),
		},
		command.Command{
			Name:        "lead-delete",
			Category:    "leads",
			Description: "Remove a lead from a campaign",
			Method:      http.MethodDelete,
			Destructive: true,
			Fields:      []command.Field{campaign, email},
			Handler:     command.Endpoint(http.MethodDelete, "/campaigns/{campaign_id}/leads/{email}"),
		},
		command.Command{
			Name:        "unsubscribes",
			Category:    "unsubscribes",
			Description: "List unsubscribed addresses",
			Method:      http.MethodGet,
			Handler:     command.Endpoint(http.MethodGet, "/unsubscribes"),
		},
		command.Command{
			Name:        "unsubscribe-add",
			Category:    "unsubscribes",
			Description: "Unsubscribe an address or domain",
			Method:      http.MethodPost,
			Fields:      []command.Field{email},
			Handler:     command.Endpoint(http.MethodPost, "/unsubscribes/{email}"),
		},
		command.Command{
			Name:        "activities",
			Category:    "activities",
			Description: "List recent activities",
			Method:      http.MethodGet,
			Fields: []command.Field{
				command.Optional("type", command.TypeString, "activity type"),
				command.Optional("campaignId", command.TypeString, ""),
			},
			Handler: command.Endpoint(http.MethodGet, "/activities"),
		},
	)
}
