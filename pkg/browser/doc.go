// Package browser manages Playwright-backed browser sessions for the
// range-builder controller.
//
// The package is built around two concepts:
//
//  1. Session: one exclusively-owned browser instance with its context
//     and single page, plus its caller-visible lifecycle status.
//  2. SessionManager: process-wide registry mapping generated session
//     ids to sessions.
//
// # Session lifecycle
//
// CreateSession registers the session with status "launching" and
// returns immediately; the browser is acquired in a background
// goroutine. The status transitions exactly once, to "active" when the
// page has opened the range-builder URL, or to "error" with the retained
// launch error. There is no automatic retry and no idle expiry —
// sessions live until CloseSession releases the page, context and
// browser in that order (tolerating each release independently
// failing) and removes the registry entry.
//
// Callers poll GetSessionInfo until the session is active before
// issuing page interactions. The registry performs no per-session
// locking: a session's page must not be driven by two requests at
// once.
package browser
