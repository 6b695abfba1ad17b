// Package repositories implements SQLite persistence for client-side state.
//
// The only persisted state is the browser-style local storage: a flat string key/value table
// holding the session token and email. [LocalStorage] implements the store consumed by the
// auth package; reads of a missing key return "" rather than an error, matching how browser
// local storage behaves.
package repositories
