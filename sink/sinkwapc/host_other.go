//go:build !wasm

package sinkwapc

// The native wapc-guest-tinygo stubs report success without reaching a host.
var defaultHostCall HostCall
