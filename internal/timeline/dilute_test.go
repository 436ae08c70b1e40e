package timeline

import (
	"errors"
	"math/rand/v2"
	"testing"

	"multicam/internal/services"
)

func TestDilutePrefersLongerNeighbour(t *testing.T) {
	in := []Frame{span(0, 5, primaryTrack), span(5, 5.2, secondaryTrack), span(5.2, 7, primaryTrack)}
	got := Dilute(in, Seconds(1))
	requireFrames(t, got, []Frame{span(0, 5.2, primaryTrack), span(5.2, 7, primaryTrack)})
}

func TestDiluteTiePrefersFollowingNeighbour(t *testing.T) {
	in := []Frame{span(0, 2, primaryTrack), span(2, 2.5, secondaryTrack), span(2.5, 4.5, primaryTrack)}
	got := Dilute(in, Seconds(1))
	requireFrames(t, got, []Frame{span(0, 2, primaryTrack), span(2, 4.5, primaryTrack)})
}

func TestDiluteEdgesAndLoneFrame(t *testing.T) {
	in := []Frame{span(0, 0.3, secondaryTrack), span(0.3, 5, primaryTrack), span(5, 5.4, secondaryTrack)}
	got := Dilute(in, Seconds(1))
	requireFrames(t, got, []Frame{span(0, 5.4, primaryTrack)})

	lone := []Frame{span(0, 0.5, primaryTrack)}
	requireFrames(t, Dilute(lone, Seconds(1)), lone)
}

func TestDiluteNZeroIsIdentity(t *testing.T) {
	in := []Frame{span(0, 0.3, secondaryTrack), span(0.3, 5, primaryTrack)}
	got, err := DiluteN(in, Seconds(1), 0)
	if err != nil {
		t.Fatalf("DiluteN: %v", err)
	}
	requireFrames(t, got, in)
	if _, err := DiluteN(in, Seconds(1), -1); !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative iterations, got %v", err)
	}
}

func TestDiluteCascadesAcrossPasses(t *testing.T) {
	in := []Frame{
		span(0, 4, primaryTrack),
		span(4, 4.4, secondaryTrack),
		span(4.4, 4.8, primaryTrack),
		span(4.8, 9, secondaryTrack),
	}
	one, err := DiluteN(in, Seconds(1), 1)
	if err != nil {
		t.Fatal(err)
	}
	three, err := DiluteN(in, Seconds(1), 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(three) > len(one) {
		t.Fatalf("extra passes must not add frames: %d > %d", len(three), len(one))
	}
	for _, f := range three {
		if f.Duration() < Seconds(1) {
			t.Fatalf("expected no flicker frames after three passes, got %s", f)
		}
	}
}

func TestDilutePreservesCoverageEachPass(t *testing.T) {
	r := rand.New(rand.NewPCG(99, 1))
	for trial := 0; trial < 40; trial++ {
		total := Seconds(120)
		primary := MergeThroughSilence(RemoveNoise(randomActivity(r, primaryTrack, 120), Seconds(0.2)), Seconds(0.5))
		secondary := MergeThroughSilence(RemoveNoise(randomActivity(r, secondaryTrack, 120), Seconds(0.2)), Seconds(0.5))
		current := Splice(Seed(primary, Complement(primary, total, secondaryTrack)), ShortFrames(secondary, Seconds(2)), total)
		for pass := 0; pass < 5; pass++ {
			next := Dilute(current, Seconds(1))
			if err := CheckCoverage(next, total); err != nil {
				t.Fatalf("trial %d pass %d: %v", trial, pass, err)
			}
			if len(next) > len(current) {
				t.Fatalf("trial %d pass %d: frame count grew %d -> %d", trial, pass, len(current), len(next))
			}
			if TotalDuration(next) < TotalDuration(current) {
				t.Fatalf("trial %d pass %d: total duration shrank", trial, pass)
			}
			current = next
		}
	}
}
