package timeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"multicam/internal/services"
)

// Rate is a project video frame rate expressed as Num/Den frames per second.
type Rate struct {
	Num int64
	Den int64
}

var ntscRates = map[string]Rate{
	"23.976": {Num: 24000, Den: 1001},
	"23.98":  {Num: 24000, Den: 1001},
	"29.97":  {Num: 30000, Den: 1001},
	"47.952": {Num: 48000, Den: 1001},
	"59.94":  {Num: 60000, Den: 1001},
}

// ParseRate accepts "25", "30000/1001", or decimal NTSC shorthands such as "29.97".
func ParseRate(value string) (Rate, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Rate{}, services.Wrap(services.ErrInvalidInput, "timeline", "parse rate", "frame rate is empty", nil)
	}
	if num, den, ok := strings.Cut(v, "/"); ok {
		n, errNum := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
		d, errDen := strconv.ParseInt(strings.TrimSpace(den), 10, 64)
		if errNum != nil || errDen != nil || n <= 0 || d <= 0 {
			return Rate{}, services.Wrap(services.ErrInvalidInput, "timeline", "parse rate",
				fmt.Sprintf("invalid frame rate %q", value), nil)
		}
		return Rate{Num: n, Den: d}, nil
	}
	if r, ok := ntscRates[v]; ok {
		return r, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 || math.IsInf(f, 0) {
		return Rate{}, services.Wrap(services.ErrInvalidInput, "timeline", "parse rate",
			fmt.Sprintf("invalid frame rate %q", value), err)
	}
	if f == math.Trunc(f) {
		return Rate{Num: int64(f), Den: 1}, nil
	}
	whole := math.Round(f * 1.001)
	if math.Abs(whole*1000/1001-f) < 0.005 {
		return Rate{Num: int64(whole) * 1000, Den: 1001}, nil
	}
	return Rate{}, services.Wrap(services.ErrUnsupported, "timeline", "parse rate",
		fmt.Sprintf("fractional frame rate %q is not an integer or NTSC rate", value), nil)
}

// FrameTicks returns the duration of one video frame in ticks. It fails with
// ErrUnsupported when the rate does not divide the tick clock exactly.
func (r Rate) FrameTicks() (Ticks, error) {
	if r.Num <= 0 || r.Den <= 0 {
		return 0, services.Wrap(services.ErrInvalidInput, "timeline", "frame ticks",
			fmt.Sprintf("invalid frame rate %d/%d", r.Num, r.Den), nil)
	}
	scaled := int64(TicksPerSecond) * r.Den
	if scaled%r.Num != 0 {
		return 0, services.Wrap(services.ErrUnsupported, "timeline", "frame ticks",
			fmt.Sprintf("frame rate %s does not align with the %d tick clock", r, TicksPerSecond), nil)
	}
	return Ticks(scaled / r.Num), nil
}

// FPS returns the rate as a float.
func (r Rate) FPS() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

func (r Rate) String() string {
	if r.Den == 1 {
		return strconv.FormatInt(r.Num, 10)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Timecode renders t as non-drop-frame HH:MM:SS:FF at this rate.
func (r Rate) Timecode(t Ticks) string {
	tpf, err := r.FrameTicks()
	if err != nil || tpf <= 0 {
		return fmt.Sprintf("%.3fs", t.Seconds())
	}
	fps := int64(math.Round(r.FPS()))
	if fps <= 0 {
		fps = 1
	}
	frames := int64(t / tpf)
	ff := frames % fps
	totalSeconds := frames / fps
	return fmt.Sprintf("%02d:%02d:%02d:%02d", totalSeconds/3600, (totalSeconds/60)%60, totalSeconds%60, ff)
}
