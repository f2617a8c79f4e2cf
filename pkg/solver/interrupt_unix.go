//go:build unix

package solver

import (
	"os"
	"syscall"
)

// xcpuSignal reports SIGXCPU on platforms that define it, per §6's
// "SIGXCPU where available".
func xcpuSignal() []os.Signal { return []os.Signal{syscall.SIGXCPU} }
