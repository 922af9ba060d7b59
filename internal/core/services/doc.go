// Package services implements the driving port interfaces.
// Services contain the duplicate detection and elimination logic and
// orchestrate calls to driven ports (adapters).
//
// Services are pure Go: besides the domain, the ports and the logger they
// only use golang.org/x/sync for bounded worker pools.
package services
