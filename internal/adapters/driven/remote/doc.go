// Package remote provides the HTTP client for the household survey API.
//
// Failures are classified into the domain taxonomy so the sync layer never
// sees transport detail: connection problems surface as domain.ErrUnreachable,
// non-2xx responses as driven.RejectionError carrying the server's own
// message, and unparseable success bodies as domain.ErrMalformedResponse.
package remote
