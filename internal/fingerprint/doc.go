// Package fingerprint computes the two content digests over a canonicalized
// table.
//
// OrderDependent serializes rows and columns in their given order into one
// byte stream and hashes it once: any change to a value, a row position, or a
// column position changes the digest. OrderIndependent fixes the column order
// by name, hashes each row to its own digest, sorts the row digests, and
// hashes the sorted set: permuting rows and/or columns never changes the
// result, while any value change still does.
//
// Serialization constants (cell separator, record separator, SHA-256) are
// fixed here and never derived from the source file, which is what makes a
// comma-separated and a semicolon-separated export of the same data hash
// identically. Both functions are total-or-failed: a typed error is returned
// and no partial digest is ever produced.
package fingerprint
