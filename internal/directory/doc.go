// Package directory orchestrates the company directory: it fetches the collection once, holds the
// user's criteria, page and view, and recomputes the visible page through the filter/sort engine and
// paginator whenever any of them change.
//
// A Session moves through three phases:
//
//	Loading --success--> Ready
//	Loading --failure--> Failed --Retry--> Loading
//
// Fetching is split into Begin, Fetch and Complete so an event loop can run the fetch elsewhere and
// hand the Result back. Results carry the generation of the Begin that issued them; only the newest
// generation is applied, so a slow superseded fetch can never overwrite a newer one.
package directory
