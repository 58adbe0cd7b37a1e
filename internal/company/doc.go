// Package company defines the company record and the criteria used to browse a directory of them.
//
// Records are externally sourced and treated as read-only once fetched. Criteria are the session-local
// browsing state: search text, an industry and location selection (each either a concrete value or the
// "all" sentinel), and one of six sort keys.
package company
