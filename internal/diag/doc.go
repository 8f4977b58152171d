// Package diag defines the diagnostic model shared by the checker, the driver
// and the renderers.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error). The built-in rules
//     only emit Warning; the driver may promote to Error on request.
//   - Code – numeric rule identifier with a stable BNxxxx string form.
//   - Message – short human text produced by the rule.
//   - Primary – source.Span of the offending node.
//   - Anchor – pre-order syntax.NodeID of the offending node.
//
// Diagnostics are values. Producers build them with New / NewWarning and add
// them to a Bag. The Bag owns them from then on.
//
// # Scope
//
// Package diag performs no IO and no formatting beyond the compact
// single-line form in FormatShortDiagnostics. Rendering lives in
// internal/diagfmt; collection and ordering policy lives in internal/driver.
//
// Analysis errors (malformed input, parse failures) are not diagnostics and
// never enter a Bag.
package diag
