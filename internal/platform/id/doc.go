// Package id generates URL-safe identifiers for requests and tasks.
//
// Identifiers are UUIDv4 bytes encoded as lowercase base32 (RFC 4648) with
// no padding, 26 characters long.
package id
