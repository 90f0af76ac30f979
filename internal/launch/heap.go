package launch

import "math"

// MiB is the unit of the computed size flag.
const MiB = 1 << 20

// HeapMiB scales a byte limit by fraction and floors it to whole mebibytes.
// It reports false when the result is not a positive finite number.
func HeapMiB(limitBytes int64, fraction float64) (int64, bool) {
	if limitBytes <= 0 {
		return 0, false
	}
	mib := math.Floor(float64(limitBytes) / MiB * fraction)
	if math.IsNaN(mib) || math.IsInf(mib, 0) || mib < 1 || mib >= math.MaxInt64 {
		return 0, false
	}
	return int64(mib), true
}
