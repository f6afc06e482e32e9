// Package harness provides utilities for integration testing the timeboxd CLI.
// It handles binary compilation, environment isolation, and command execution.
//
// Environment variables managed:
//   - TIMEBOXD_HOME: Isolated per test (temp directory)
//   - TIMEBOXD_DEBUG: Disabled to reduce noise
package harness
