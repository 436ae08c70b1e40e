package timeline

// Seed concatenates the primary frames with their synthetic complement and
// sorts by InPoint. When complement came from Complement(primary, ...) the
// result already satisfies the coverage invariant.
func Seed(primary, complement []Frame) []Frame {
	all := make([]Frame, 0, len(primary)+len(complement))
	all = append(all, primary...)
	all = append(all, complement...)
	return Sorted(all)
}

// ShortFrames keeps frames no longer than longThreshold. Longer secondary
// frames are already represented by the synthetic complement.
func ShortFrames(frames []Frame, longThreshold Ticks) []Frame {
	out := make([]Frame, 0, len(frames))
	for _, f := range frames {
		if f.Duration() <= longThreshold {
			out = append(out, f)
		}
	}
	return out
}

// Splice interleaves short interjections into a covering timeline. Each short
// frame, clipped to [0, span), is excised from every frame it touches: left
// and right remnants keep their track and origin and abut the inserted frame
// exactly, so coverage is preserved. Inserted frames are marked Detected.
// An empty seed has nothing to splice into and is returned unchanged.
func Splice(seed, shorts []Frame, span Ticks) []Frame {
	result := Sorted(seed)
	if len(result) == 0 {
		return result
	}
	for _, s := range Sorted(shorts) {
		if s.InPoint < 0 {
			s.InPoint = 0
		}
		if s.OutPoint > span {
			s.OutPoint = span
		}
		if !s.Valid() {
			continue
		}
		s.Origin = Detected
		result = spliceOne(result, s)
	}
	return result
}

func spliceOne(timeline []Frame, s Frame) []Frame {
	out := make([]Frame, 0, len(timeline)+2)
	inserted := false
	for _, f := range timeline {
		if f.OutPoint <= s.InPoint || f.InPoint >= s.OutPoint {
			if !inserted && f.InPoint >= s.OutPoint {
				out = append(out, s)
				inserted = true
			}
			out = append(out, f)
			continue
		}
		if f.InPoint < s.InPoint {
			out = append(out, Frame{InPoint: f.InPoint, OutPoint: s.InPoint, Track: f.Track, Origin: f.Origin})
		}
		if !inserted {
			out = append(out, s)
			inserted = true
		}
		if s.OutPoint < f.OutPoint {
			out = append(out, Frame{InPoint: s.OutPoint, OutPoint: f.OutPoint, Track: f.Track, Origin: f.Origin})
		}
	}
	if !inserted {
		out = append(out, s)
	}
	return out
}
