package timeline

import (
	"math/rand/v2"
	"testing"
)

func synthetic(in, out float64, track int) Frame {
	f := span(in, out, track)
	f.Origin = Synthetic
	return f
}

func TestComplementExample(t *testing.T) {
	primary := []Frame{span(0, 2, primaryTrack), span(5, 7, primaryTrack)}
	got := Complement(primary, Seconds(7), secondaryTrack)
	requireFrames(t, got, []Frame{synthetic(2, 5, secondaryTrack)})
}

func TestComplementFillsEdges(t *testing.T) {
	primary := []Frame{span(1, 2, primaryTrack)}
	got := Complement(primary, Seconds(4), secondaryTrack)
	requireFrames(t, got, []Frame{synthetic(0, 1, secondaryTrack), synthetic(2, 4, secondaryTrack)})
	if err := CheckCoverage(Seed(primary, got), Seconds(4)); err != nil {
		t.Fatal(err)
	}
}

func TestComplementOfSilenceCoversSpan(t *testing.T) {
	got := Complement(nil, Seconds(10), secondaryTrack)
	requireFrames(t, got, []Frame{synthetic(0, 10, secondaryTrack)})
	if err := CheckCoverage(got, Seconds(10)); err != nil {
		t.Fatal(err)
	}
}

func TestComplementOfEmptySpanIsEmpty(t *testing.T) {
	if got := Complement(nil, 0, secondaryTrack); len(got) != 0 {
		t.Fatalf("expected empty complement, got %v", got)
	}
}

func TestShortFrames(t *testing.T) {
	in := []Frame{span(0, 1, secondaryTrack), span(2, 4, secondaryTrack), span(5, 10, secondaryTrack)}
	got := ShortFrames(in, Seconds(2))
	requireFrames(t, got, []Frame{span(0, 1, secondaryTrack), span(2, 4, secondaryTrack)})
}

func TestSpliceInsideFrame(t *testing.T) {
	seed := []Frame{span(0, 10, primaryTrack)}
	got := Splice(seed, []Frame{span(3, 4, secondaryTrack)}, Seconds(10))
	requireFrames(t, got, []Frame{span(0, 3, primaryTrack), span(3, 4, secondaryTrack), span(4, 10, primaryTrack)})
}

func TestSpliceAcrossBoundarySplitsEveryTouchedFrame(t *testing.T) {
	seed := Seed(
		[]Frame{span(0, 5, primaryTrack), span(8, 12, primaryTrack)},
		[]Frame{synthetic(5, 8, secondaryTrack)},
	)
	got := Splice(seed, []Frame{span(4, 9, secondaryTrack)}, Seconds(12))
	requireFrames(t, got, []Frame{
		span(0, 4, primaryTrack),
		span(4, 9, secondaryTrack),
		span(9, 12, primaryTrack),
	})
}

func TestSpliceOnExactBoundary(t *testing.T) {
	seed := []Frame{span(0, 5, primaryTrack), synthetic(5, 10, secondaryTrack)}
	got := Splice(seed, []Frame{span(5, 6, secondaryTrack)}, Seconds(10))
	requireFrames(t, got, []Frame{span(0, 5, primaryTrack), span(5, 6, secondaryTrack), synthetic(6, 10, secondaryTrack)})
}

func TestSpliceClipsToSpanAndSkipsEmptySeed(t *testing.T) {
	seed := []Frame{span(0, 5, primaryTrack)}
	got := Splice(seed, []Frame{span(4.5, 6, secondaryTrack)}, Seconds(5))
	requireFrames(t, got, []Frame{span(0, 4.5, primaryTrack), span(4.5, 5, secondaryTrack)})

	if got := Splice(nil, []Frame{span(1, 2, secondaryTrack)}, Seconds(5)); len(got) != 0 {
		t.Fatalf("expected empty result for empty seed, got %v", got)
	}
}

func TestMergedTimelineKeepsCoverage(t *testing.T) {
	r := rand.New(rand.NewPCG(21, 42))
	for trial := 0; trial < 50; trial++ {
		total := Seconds(90)
		primary := MergeThroughSilence(RemoveNoise(randomActivity(r, primaryTrack, 90), Seconds(0.2)), Seconds(0.5))
		secondary := MergeThroughSilence(RemoveNoise(randomActivity(r, secondaryTrack, 90), Seconds(0.2)), Seconds(0.5))
		seed := Seed(primary, Complement(primary, total, secondaryTrack))
		if err := CheckCoverage(seed, total); err != nil {
			t.Fatalf("trial %d seed: %v", trial, err)
		}
		merged := Splice(seed, ShortFrames(secondary, Seconds(2)), total)
		if err := CheckCoverage(merged, total); err != nil {
			t.Fatalf("trial %d merged: %v", trial, err)
		}
	}
}
