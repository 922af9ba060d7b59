// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - FileSystem: directory listing, file reads and removal
//   - HashProvider: digest state construction per algorithm
//   - ConfigStore: layered configuration values
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ProgressObserver: stage and per-file progress
//   - ReportWriter: JSON run reports
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
