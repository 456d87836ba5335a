// Package apollo is the Apollo.io command catalog.
package apollo

import (
	"net/http"

	"github.com/thoreinstein/cec/internal/command"
)

var page = []command.Field{
	command.Optional("page", command.TypeInteger, "page number, from 1"),
	command.Optional("per_page", command.TypeInteger, "results per page"),
}

func with(fields ...command.Field) []command.Field {
	return append(fields, page...)
}

// Module returns the Apollo commands. Apollo's searches are POST requests
// and therefore never retried.
func Module() *command.Module {
	return command.MustModule(
		command.Command{
			Name:        "people-search",
			Category:    "people",
			Description: "Search the people database",
			Method:      http.MethodPost,
			Fields: with(
				command.Optional("q_keywords", command.TypeString, "keywords"),
				command.Optional("person_titles", command.TypeArray, "job titles"),
				command.Optional("person_locations", command.TypeArray, "locations"),
			),
			Handler: command.Endpoint(http.MethodPost, "/mixed_people/search"),
		},
		command.Command{
			Name:        "person-enrich",
			Category:    "people",
			Description: "Enrich one person",
			Method:      http.MethodPost,
			Fields: []command.Field{
				command.Optional("email", command.TypeString, ""),
				command.Optional("first_name", command.TypeString, ""),
				command.Optional("last_name", command.TypeString, ""),
				command.Optional("domain", command.TypeString, "company domain"),
				command.Optional("organization_name", command.TypeString, ""),
			},
			Handler: command.Endpoint(http.MethodPost, "/people/match"),
		},
		command.Command{
			Name:        "organization-enrich",
			Category:    "organizations",
			Description: "Enrich a company by domain",
			Method:      http.MethodGet,
			Fields:      []command.Field{command.Required("domain", command.TypeString, "company domain")},
			Handler:     command.Endpoint(http.MethodGet, "/organizations/enrich"),
		},
		command.Command{
			Name:        "organizations-search",
			Category:    "organizations",
			Description: "Search companies",
			Method:      http.MethodPost,
			Fields:      with(command.Optional("q_organization_name", command.TypeString, "name filter")),
			Handler:     command.Endpoint(http.MethodPost, "/mixed_companies/search"),
		},
		command.Command{
			Name:        "contact-create",
			Category:    "contacts",
			Description: "Create a contact in your CRM",
			Method:      http.MethodPost,
			Fields: []command.Field{
				command.Required("first_name", command.TypeString, ""),
				command.Required("last_name", command.TypeString, ""),
				command.Optional("email", command.TypeString, ""),
				command.Optional("organization_name", command.TypeString, ""),
				command.Optional("title", command.TypeString, ""),
			},
			Handler: command.Endpoint(http.MethodPost, "/contacts"),
		},
		command.Command{
			Name:        "contacts-search",
			Category:    "contacts",
			Description: "Search your contacts",
			Method:      http.MethodPost,
			Fields:      with(command.Optional("q_keywords", command.TypeString, "keywords")),
			Handler:     command.Endpoint(http.MethodPost, "/contacts/search"),
		},
		command.Command{
			Name:        "sequences-search",
			Category:    "sequences",
			Description: "Search sequences",
			Method:      http.MethodPost,
			Fields:      with(command.Optional("q_name", command.TypeString, "name filter")),
			Handler:     command.Endpoint(http.MethodPost, "/emailer_campaigns/search"),
		},
		command.Command{
			Name:        "email-accounts",
			Category:    "accounts",
			Description: "List linked mailboxes",
			Method:      http.MethodGet,
			Handler:     command.Endpoint(http.MethodGet, "/email_accounts"),
		},
		command.Command{
			Name:        "auth-health",
			Category:    "accounts",
			Description: "Check that the API key is accepted",
			Method:      http.MethodGet,
			Handler:     command.Endpoint(http.MethodGet, "/auth/health"),
		},
	)
}
