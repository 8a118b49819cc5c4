//go:build !linux && !darwin

package preflight

func freeDiskBytes(string) (uint64, error) {
	return 0, errDiskStatsUnsupported
}
