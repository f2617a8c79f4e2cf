//go:build !unix

package solver

import "os"

// xcpuSignal is empty on platforms without SIGXCPU.
func xcpuSignal() []os.Signal { return nil }
