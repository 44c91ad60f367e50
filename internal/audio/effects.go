package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// sweep is an oscillator whose frequency glides linearly from start to
// end over its duration. A constant tone is a sweep with start == end.
type sweep struct {
	start, end float64
	wave       WaveType
	rate       beep.SampleRate
	total      int
	pos        int
	phase      float64
	noise      *rand.Rand
}

// NewOscillator returns a constant tone of the given wave shape.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep returns a tone gliding from startFreq to endFreq.
func NewSweep(startFreq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		start: startFreq,
		end:   endFreq,
		wave:  wave,
		rate:  rate,
		total: rate.N(duration),
		noise: rand.New(rand.NewPCG(uint64(startFreq), uint64(endFreq))),
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}

		var v float64
		switch s.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * s.phase)
		case WaveSquare:
			v = 1
			if s.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (s.phase - 0.5)
		case WaveNoise:
			v = s.noise.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		progress := float64(s.pos) / float64(s.total)
		freq := s.start + (s.end-s.start)*progress
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// decay fades a stream out exponentially over its duration.
type decay struct {
	streamer beep.Streamer
	total    int
	pos      int
	rate     float64 // Larger is a sharper fade
}

// NewDecay shapes s with an exponential fade lasting duration.
func NewDecay(s beep.Streamer, duration time.Duration, sharpness float64, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, total: rate.N(duration), rate: sharpness}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if d.pos >= d.total {
			return i, i > 0
		}
		vol := math.Exp(-d.rate * float64(d.pos) / float64(d.total))
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume scales s linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Sound effect durations.
const (
	LaserDuration     = 120 * time.Millisecond
	ExplosionDuration = 400 * time.Millisecond
	HitDuration       = 250 * time.Millisecond
)

// CreateLaserSound is a short falling square-wave zap.
func CreateLaserSound(rate beep.SampleRate) beep.Streamer {
	s := NewSweep(1400, 300, LaserDuration, WaveSquare, rate)
	return newVolume(NewDecay(s, LaserDuration, 3, rate), 0.25)
}

// CreateExplosionSound is a burst of fading noise.
func CreateExplosionSound(rate beep.SampleRate) beep.Streamer {
	s := NewOscillator(1, ExplosionDuration, WaveNoise, rate)
	return newVolume(NewDecay(s, ExplosionDuration, 5, rate), 0.5)
}

// CreateHitSound is a low falling buzz for the ship taking damage.
func CreateHitSound(rate beep.SampleRate) beep.Streamer {
	s := NewSweep(180, 60, HitDuration, WaveSaw, rate)
	return newVolume(NewDecay(s, HitDuration, 2, rate), 0.4)
}
