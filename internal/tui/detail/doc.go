// Package detail lazily loads a single company for the TUI detail view.
//
// The record is fetched only when the detail view opens. While it loads the caller shows a spinner;
// a failed lookup stays on screen with an inline retry ('r') instead of leaving the program.
package detail
