package viz

import "sort"

// windowIndices returns the half-open sample range [i0, i1) whose timestamps
// fall inside [t0, t1]. Time is monotonic, so binary search applies.
func windowIndices(times []float64, t0, t1 float64) (int, int) {
	i0 := sort.SearchFloat64s(times, t0)
	i1 := sort.SearchFloat64s(times, t1)
	for i1 < len(times) && times[i1] <= t1 {
		i1++
	}
	return i0, i1
}

// downsample reduces a sample slice to at most width points by bucket
// averaging, so a panel never renders more points than terminal columns.
func downsample(samples []float64, width int) []float64 {
	if width <= 0 || len(samples) <= width {
		return samples
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		lo := i * len(samples) / width
		hi := (i + 1) * len(samples) / width
		if hi <= lo {
			hi = lo + 1
		}
		sum := 0.0
		for _, v := range samples[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}

// clampWindow keeps [t0, t1] inside the recording span while preserving the
// window width where possible.
func clampWindow(t0, t1, lo, hi float64) (float64, float64) {
	if hi <= lo {
		return lo, lo + 1
	}
	span := t1 - t0
	if span >= hi-lo {
		return lo, hi
	}
	if t0 < lo {
		return lo, lo + span
	}
	if t1 > hi {
		return hi - span, hi
	}
	return t0, t1
}
