// Package rangebuilder drives the filter controls of the GTO Wizard
// range-builder panel.
//
// The package is built around two concepts:
//
//  1. Filter catalog: every clickable filter (game type, stake, player
//     count, ...) is described as data — its closed value set, the
//     site's data-tst identifier per value, and the on-screen label
//     when it differs from the request value. The catalog also fixes
//     the order filters are applied in.
//  2. Executor: translates one filter value into a click on the live
//     page by trying an ordered list of selector strategies, most
//     specific first, until one locates a visible element.
//
// # Fallback contract
//
// The site's DOM is external and unversioned, so no single selector can
// be trusted. Each click tries, in order: an attribute match, an
// attribute-plus-span match, a text match, a bare text locator, and a
// styled-class-plus-text match. The first strategy that finds a visible
// element wins and the rest are skipped. If none succeed the filter
// fails with an error naming the filter and value.
//
// After a click the executor briefly waits and checks for the button's
// active styling. A missed confirmation is logged and otherwise
// ignored; the click is trusted over the confirmation.
//
// # Failure policy
//
// Opening the range-selector overlay is best-effort: a failure is
// logged and the filter sequence continues. Filters themselves are
// independent — a failed filter is recorded and the next one is still
// attempted. Unknown filter values are rejected up front, before
// anything is clicked.
//
// The executor operates on the narrow PageActor interface, implemented
// by browser.Session, so the fallback logic is testable without a
// browser.
package rangebuilder
