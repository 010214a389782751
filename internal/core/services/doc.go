// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO dependencies. Placement arithmetic
// lives in the placement and geometry packages; services load a session,
// apply one operation and persist the result.
package services
