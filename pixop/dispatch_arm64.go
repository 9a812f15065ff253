//go:build arm64

package pixop

import "golang.org/x/sys/cpu"

func init() {
	// ASIMD is part of ARMv8-A, the check is for consistency.
	switch {
	case cpu.ARM64.HasSVE:
		cpuName = "sve"
	case cpu.ARM64.HasASIMD:
		cpuName = "neon"
	default:
		cpuName = "scalar"
	}
	defaultPipeline = selectPipeline()
}
