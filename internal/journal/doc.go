// Package journal implements the entry-lifecycle and date-navigation state
// manager of Daybook: a date cursor over calendar days, a per-day analysis
// cache, and a Manager that orchestrates them against a remote entry store,
// a summarization service and an authenticated session.
//
// The package is UI-free. Collaborators are injected as interfaces; all
// remote calls take a context. A Manager instance is not safe for concurrent
// use: callers are expected to serialize operations (the CLI drives it from
// a single loop).
package journal
