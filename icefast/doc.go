// Package icefast provides a fast implementation of the ICE (Information Concealment Engine) block cipher.
//
// The cipher itself lives in package ice. Surrounding packages cover what a
// deployment needs around it: key derivation (kdf), io.Reader/io.Writer
// adapters with a parallel buffer driver (stream), TOML profiles (config) and
// structured logging (log). The icefast command exposes all of it from the shell.
package icefast

// Version is the library version reported by the command.
const Version = "0.3.0"
