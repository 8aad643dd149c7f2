// Package kdf turns application values into raw ICE key bytes.
//
// The ice package only consumes key bytes; this package produces them:
//   - FromVersion: the 16-byte level-2 key derived from a game client version
//   - FromSecret: HKDF-SHA256 expansion of a passphrase or shared secret to
//     exactly the key size of a level
package kdf
