package schemacov

import "runtime"

// defaultRegistry backs the package-level helpers. Suites that need isolated
// scopes should create their own Registry.
var defaultRegistry = NewRegistry()

// registrationDepth is the caller-frame distance from Register to the user
// call site.
const registrationDepth = 2

// Register registers root with the default registry, capturing the caller's
// source location as the registration site. Idempotent per root.
func Register(root Node) *Store {
	return defaultRegistry.Register(root, callerLocation(registrationDepth))
}

// Report generates gap records from the default registry. See
// Registry.Report.
func Report(filename string) []GapRecord {
	return defaultRegistry.Report(filename)
}

// Reset clears the default registry.
func Reset() {
	defaultRegistry.Reset()
}

// callerLocation captures {file, line} at a fixed frame depth.
func callerLocation(depth int) Location {
	_, file, line, ok := runtime.Caller(depth)
	if !ok {
		return Location{}
	}
	return Location{Filename: file, Line: line}
}
