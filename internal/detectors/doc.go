// Package detectors holds the fixed catalogue of secret patterns used by
// pushguard. Each entry maps a human-readable kind to a case-insensitive
// regular expression that is run against whole file contents.
package detectors
