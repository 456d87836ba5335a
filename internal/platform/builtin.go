package platform

import (
	"sync"

	"github.com/thoreinstein/cec/internal/api"
	"github.com/thoreinstein/cec/internal/platform/apollo"
	"github.com/thoreinstein/cec/internal/platform/instantly"
	"github.com/thoreinstein/cec/internal/platform/lemlist"
	"github.com/thoreinstein/cec/internal/platform/salesforge"
	"github.com/thoreinstein/cec/internal/platform/smartlead"
)

// Platform keys.
const (
	SmartLead  = "smartlead"
	Instantly  = "instantly"
	Apollo     = "apollo"
	Salesforge = "salesforge"
	Lemlist    = "lemlist"
)

// Builtin returns the static table of supported platforms. The counts are
// kept in sync with the catalogs by tests.
func Builtin() []Entry {
	return []Entry{
		{
			Key:            SmartLead,
			DisplayName:    "SmartLead",
			CommandCount:   9,
			CategoryCount:  4,
			DefaultBaseURL: "https://server.smartlead.ai/api/v1",
			Auth:           api.Auth{Style: api.AuthQuery, Name: "api_key"},
			HealthCommand:  "campaigns",
			Load:           smartlead.Module,
		},
		{
			Key:            Instantly,
			DisplayName:    "Instantly",
			CommandCount:   10,
			CategoryCount:  4,
			DefaultBaseURL: "https://api.instantly.ai/api/v2",
			Auth:           api.Auth{Style: api.AuthHeader, Name: "Authorization", Prefix: "Bearer "},
			HealthCommand:  "accounts",
			Load:           instantly.Module,
		},
		{
			Key:            Apollo,
			DisplayName:    "Apollo",
			CommandCount:   9,
			CategoryCount:  5,
			DefaultBaseURL: "https://api.apollo.io/api/v1",
			Auth:           api.Auth{Style: api.AuthHeader, Name: "X-Api-Key"},
			HealthCommand:  "auth-health",
			Load:           apollo.Module,
		},
		{
			Key:            Salesforge,
			DisplayName:    "Salesforge",
			CommandCount:   9,
			CategoryCount:  5,
			DefaultBaseURL: "https://api.salesforge.ai/public/v2",
			Auth:           api.Auth{Style: api.AuthHeader, Name: "Authorization"},
			HealthCommand:  "me",
			Load:           salesforge.Module,
		},
		{
			Key:            Lemlist,
			DisplayName:    "lemlist",
			CommandCount:   9,
			CategoryCount:  5,
			DefaultBaseURL: "https://api.lemlist.com/api",
			Auth:           api.Auth{Style: api.AuthBasic},
			HealthCommand:  "team",
			Load:           lemlist.Module,
		},
	}
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := NewRegistry(Builtin()...)
	if err != nil {
		panic(err)
	}
	return r
})

// Default returns the process-wide registry of built-in platforms.
func Default() *Registry {
	return defaultRegistry()
}
