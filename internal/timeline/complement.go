package timeline

// Complement produces one Synthetic frame on track for every non-empty gap of
// primary inside [0, span): before the first frame, between frames, and after
// the last. Together with primary the result tiles the span exactly, so an
// empty primary yields a single frame covering [0, span).
func Complement(primary []Frame, span Ticks, track int) []Frame {
	out := make([]Frame, 0, len(primary)+1)
	if span <= 0 {
		return out
	}
	cursor := Ticks(0)
	for _, f := range Sorted(primary) {
		start := f.InPoint
		if start > span {
			start = span
		}
		if start > cursor {
			out = append(out, Frame{InPoint: cursor, OutPoint: start, Track: track, Origin: Synthetic})
		}
		if f.OutPoint > cursor {
			cursor = f.OutPoint
		}
	}
	if cursor < span {
		out = append(out, Frame{InPoint: cursor, OutPoint: span, Track: track, Origin: Synthetic})
	}
	return out
}
