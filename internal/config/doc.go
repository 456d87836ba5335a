// Package config resolves and persists cec configuration.
//
// Two kinds of configuration live here:
//
//   - [Settings]: application-wide options read with viper from
//     <ConfigHome>/cec/settings.yaml and CEC_* environment variables.
//   - [Store]: per-platform credentials (API key, base URL, last use),
//     persisted as one JSON file per platform by [FileBackend].
//
// # Resolution Precedence
//
// [Store.ResolveAPIKey] and [Store.ResolveBaseURL] consult, highest first:
//
//  1. command-line overrides registered with [WithOverride]
//  2. <PLATFORM>_API_KEY / <PLATFORM>_BASE_URL environment variables
//  3. the OS keyring, when credential_store is "keyring"
//  4. the platform's JSON file
//  5. the built-in default (base URL only)
//
// A missing API key is reported as an *api.Error of kind KindNotConfigured.
//
// # Persistence
//
// [Store.Set] merges fields under an advisory file lock and writes through a
// temp file and rename, so a crash mid-write leaves the previous file intact.
// Tests use [MemoryBackend] for an isolated store.
package config
