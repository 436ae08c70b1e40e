package timeline

// RemoveNoise drops frames shorter than minDuration. Clicks and breaths come
// through the amplitude gate as very short runs; they are not speech.
func RemoveNoise(frames []Frame, minDuration Ticks) []Frame {
	out := make([]Frame, 0, len(frames))
	for _, f := range frames {
		if f.Duration() < minDuration {
			continue
		}
		out = append(out, f)
	}
	return out
}

// MergeThroughSilence joins same-track frames separated by a silence of at
// most maxGap into one Detected frame and repeats until no pair qualifies.
// Overlapping frames are always joined, so the result never overlaps per
// track. The result is sorted and applying it again is a no-op.
func MergeThroughSilence(frames []Frame, maxGap Ticks) []Frame {
	if maxGap < 0 {
		maxGap = 0
	}
	merged := make([]Frame, 0, len(frames))
	for _, group := range ByTrack(frames) {
		current := Sorted(group)
		for {
			next, changed := mergePass(current, maxGap)
			current = next
			if !changed {
				break
			}
		}
		merged = append(merged, current...)
	}
	return Sorted(merged)
}

func mergePass(sorted []Frame, maxGap Ticks) ([]Frame, bool) {
	if len(sorted) < 2 {
		return sorted, false
	}
	out := make([]Frame, 0, len(sorted))
	changed := false
	for _, f := range sorted {
		if len(out) == 0 {
			out = append(out, f)
			continue
		}
		last := &out[len(out)-1]
		if f.InPoint-last.OutPoint <= maxGap {
			end := last.OutPoint
			if f.OutPoint > end {
				end = f.OutPoint
			}
			*last = Frame{InPoint: last.InPoint, OutPoint: end, Track: last.Track, Origin: Detected}
			changed = true
			continue
		}
		out = append(out, f)
	}
	return out, changed
}
