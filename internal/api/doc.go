// Package api performs authenticated HTTP calls against cold-email platforms
// and maps every failure onto one error taxonomy.
//
// A [Client] is built from a read-only [Options] snapshot. It never retries:
// each [Error] carries a Retryable flag so callers can apply their own
// policy.
//
//	| Failure                          | Kind            | Retryable        |
//	|----------------------------------|-----------------|------------------|
//	| DNS, connect, TLS, reset         | KindNetwork     | yes              |
//	| deadline exceeded                | KindTimeout     | yes              |
//	| HTTP status >= 400               | KindHTTPStatus  | 429 and 5xx only |
//	| no API key at construction       | KindNotConfigured | no             |
//	| bad base URL or request body     | KindValidation  | no               |
//	| caller cancellation, other       | KindUnknown     | no               |
package api
