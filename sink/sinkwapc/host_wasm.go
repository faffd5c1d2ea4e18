//go:build wasm

package sinkwapc

import (
	wapc "github.com/wapc/wapc-guest-tinygo"
)

var defaultHostCall HostCall = wapc.HostCall
