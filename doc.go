// Package schemacov measures how thoroughly a test suite exercises a
// declarative validation schema.
//
// A schema root is registered once; registration performs a full static scan
// of the schema graph and builds one coverage log per distinct node, merging
// the paths of nodes that are reachable via several structural routes. A
// validation engine then reports what it touched through the instrumentation
// methods on Store (Entry, LogRuleOutcome, RecordValue) while it validates
// real input. At the end of a suite, Report reduces the accumulated logs into
// a minimal list of coverage gaps: nodes never reached, rules that only ever
// passed or only ever failed, and declared literal values never observed.
//
// Key design constraints:
//   - One coverage log per distinct node, keyed by node identity, never by
//     path. Paths are a derived attribute of a log.
//   - Store topology is frozen after the scan; instrumentation only mutates
//     accumulated state.
//   - Report output is deterministic: logs in discovery order, rules in
//     declaration order, literal sets in declaration order.
//   - The registry is an explicit object; the package-level helpers are a
//     thin wrapper around a default registry.
//
// The schema language, the validation engine, and the builder API are
// external collaborators. They meet this package only at the Node interface
// and the Store instrumentation methods.
package schemacov
