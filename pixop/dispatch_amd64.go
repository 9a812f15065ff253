//go:build amd64

package pixop

import "golang.org/x/sys/cpu"

func init() {
	switch {
	case cpu.X86.HasAVX512F:
		cpuName = "avx512"
	case cpu.X86.HasAVX2:
		cpuName = "avx2"
	default:
		// SSE2 is part of the amd64 baseline.
		cpuName = "sse2"
	}
	defaultPipeline = selectPipeline()
}
