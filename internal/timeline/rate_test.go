package timeline

import (
	"errors"
	"testing"

	"multicam/internal/services"
)

func TestParseRate(t *testing.T) {
	cases := []struct {
		in   string
		want Rate
	}{
		{"25", Rate{25, 1}},
		{" 30000/1001 ", Rate{30000, 1001}},
		{"29.97", Rate{30000, 1001}},
		{"23.976", Rate{24000, 1001}},
		{"59.94", Rate{60000, 1001}},
		{"50.0", Rate{50, 1}},
	}
	for _, tc := range cases {
		got, err := ParseRate(tc.in)
		if err != nil {
			t.Fatalf("ParseRate(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"", "abc", "0", "-25", "25/0"} {
		if _, err := ParseRate(bad); !errors.Is(err, services.ErrInvalidInput) {
			t.Fatalf("ParseRate(%q): expected ErrInvalidInput, got %v", bad, err)
		}
	}
	if _, err := ParseRate("17.3"); !errors.Is(err, services.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported for odd fractional rate, got %v", err)
	}
}

func TestFrameTicks(t *testing.T) {
	tpf, err := Rate{25, 1}.FrameTicks()
	if err != nil {
		t.Fatalf("FrameTicks: %v", err)
	}
	if tpf != 10160640000 {
		t.Fatalf("unexpected ticks per frame at 25fps: %d", tpf)
	}
	tpf, err = Rate{30000, 1001}.FrameTicks()
	if err != nil {
		t.Fatalf("FrameTicks ntsc: %v", err)
	}
	if tpf != 8475667200 {
		t.Fatalf("unexpected ticks per frame at 29.97fps: %d", tpf)
	}
	if _, err := (Rate{7919, 1}).FrameTicks(); !errors.Is(err, services.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported for prime rate, got %v", err)
	}
}

func TestTimecode(t *testing.T) {
	rate := Rate{25, 1}
	if got := rate.Timecode(Seconds(3723) + Seconds(0.4)); got != "01:02:03:10" {
		t.Fatalf("unexpected timecode %q", got)
	}
}
