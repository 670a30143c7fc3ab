// Package history persists computed fingerprints in a SQLite database so
// repeated runs can be compared and audited.
//
// Each record ties a source path and fingerprint mode to the digest it
// produced, with the table shape and a UTC timestamp. Writers take a sidecar
// file lock so concurrent CLI invocations against the same database serialize
// cleanly.
package history
