//go:build !amd64 && !arm64

package pixop

func init() {
	cpuName = "scalar"
	defaultPipeline = selectPipeline()
}
