// Package monitoring holds the process-wide error tracker used to report
// persistence failures and recovered HTTP panics.
package monitoring
