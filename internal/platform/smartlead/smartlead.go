// Package smartlead is the SmartLead command catalog.
package smartlead

import (
	"net/http"

	"github.com/thoreinstein/cec/internal/command"
)

const (
	catCampaigns = "campaigns"
	catLeads     = "leads"
	catAnalytics = "analytics"
	catAccounts  = "accounts"
)

var campaignID = command.Required("campaign_id", command.TypeInteger, "campaign id")

var paging = []command.Field{
	command.Optional("offset", command.TypeInteger, "rows to skip"),
	command.Optional("limit", command.TypeInteger, "page size"),
}

// Module returns the SmartLead commands.
func Module() *command.Module {
	return command.MustModule(
		command.Command{
			Name:        "campaigns",
			Category:    catCampaigns,
			Description: "List campaigns",
			Method:      http.MethodGet,
			Fields:      []command.Field{command.Optional("client_id", command.TypeInteger, "filter by client")},
			Handler:     command.Endpoint(http.MethodGet, "/campaigns"),
		},
		command.Command{
			Name:        "campaign-get",
			Category:    catCampaigns,
			Description: "Show one campaign",
			Method:      http.MethodGet,
			Fields:      []command.Field{campaignID},
			Handler:     command.Endpoint(http.MethodGet, "/campaigns/{campaign_id}"),
		},
		command.Command{
			Name:        "campaign-create",
			Category:    catCampaigns,
			Description: "Create a draft campaign",
			Method:      http.MethodPost,
			Fields: []command.Field{
				command.Required("name", command.TypeString, "campaign name"),
				command.Optional("client_id", command.TypeInteger, "owning client"),
			},
			Handler: command.Endpoint(http.MethodPost, "/campaigns/create"),
		},
		command.Command{
			Name:        "campaign-status",
			Category:    catCampaigns,
			Description: "Start, pause or stop a campaign (START, PAUSED, STOPPED)",
			Method:      http.MethodPost,
			Fields: []command.Field{
				campaignID,
				command.Required("status", command.TypeString, "START, PAUSED or STOPPED"),
			},
			Handler: command.Endpoint(http.MethodPost, "/campaigns/{campaign_id}/status"),
		},
		command.Command{
			Name:        "campaign-delete",
			Category:    catCampaigns,
			Description: "Delete a campaign",
			Method:      http.MethodDelete,
			Destructive: true,
			Fields:      []command.Field{campaignID},
			Handler:     command.Endpoint(http.MethodDelete, "/campaigns/{campaign_id}"),
		},
		command.Command{
			Name:        "leads",
			Category:    catLeads,
			Description: "List the leads of a campaign",
			Method:      http.MethodGet,
			Fields:      append([]command.Field{campaignID}, paging...),
			Handler:     command.Endpoint(http.MethodGet, "/campaigns/{campaign_id}/leads"),
		},
		command.Command{
			Name:        "leads-add",
			Category:    catLeads,
			Description: "Add up to 100 leads to a campaign",
			Method:      http.MethodPost,
			Fields: []command.Field{
				campaignID,
				command.Required("lead_list", command.TypeArray, "lead objects with at least an email"),
				command.Optional("settings", command.TypeObject, "duplicate handling options"),
			},
			Handler: command.Endpoint(http.MethodPost, "/campaigns/{campaign_id}/leads"),
		},
		command.Command{
			Name:        "campaign-analytics",
			Category:    catAnalytics,
			Description: "Top-level analytics of a campaign",
			Method:      http.MethodGet,
			Fields:      []command.Field{campaignID},
			Handler:     command.Endpoint(http.MethodGet, "/campaigns/{campaign_id}/analytics"),
		},
		command.Command{
			Name:        "email-accounts",
			Category:    catAccounts,
			Description: "List connected sending accounts",
			Method:      http.MethodGet,
			Fields:      paging,
			Handler:     command.Endpoint(http.MethodGet, "/email-accounts/"),
		},
	)
}
