package window

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	sfx "github.com/tomz197/meteors/internal/audio"
)

const sampleRate = 44100

// Sounds plays effects through an ebiten audio context. It satisfies
// the same cue interface as the terminal sound manager.
type Sounds struct {
	ctx       *audio.Context
	laser     []byte
	explosion []byte
	hit       []byte
}

// NewSounds loads laser.wav and explosion.wav from dir. Missing or
// unreadable files fall back to synthesized effects; the returned
// errors say which.
func NewSounds(dir string) (*Sounds, []error) {
	s := &Sounds{ctx: audio.NewContext(sampleRate)}
	var errs []error

	var err error
	if s.laser, err = loadWav(filepath.Join(dir, laserFile)); err != nil {
		errs = append(errs, err)
		s.laser = pcm(sfx.CreateLaserSound(sampleRate))
	}
	if s.explosion, err = loadWav(filepath.Join(dir, boomFile)); err != nil {
		errs = append(errs, err)
		s.explosion = pcm(sfx.CreateExplosionSound(sampleRate))
	}
	s.hit = pcm(sfx.CreateHitSound(sampleRate))
	return s, errs
}

func loadWav(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	samples, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return samples, nil
}

// pcm renders a finite streamer into 16-bit little-endian stereo, the
// format ebiten players take.
func pcm(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				sample := int16(math.Max(-1, math.Min(1, v)) * math.MaxInt16)
				out = append(out, byte(sample), byte(sample>>8))
			}
		}
		if !ok {
			return out
		}
	}
}

// PlayShot plays the laser sound.
func (s *Sounds) PlayShot() { s.play(s.laser) }

// PlayExplosion plays a meteor blowing up.
func (s *Sounds) PlayExplosion() { s.play(s.explosion) }

// PlayHit plays the ship taking damage.
func (s *Sounds) PlayHit() { s.play(s.hit) }

func (s *Sounds) play(data []byte) {
	if len(data) == 0 {
		return
	}
	s.ctx.NewPlayerFromBytes(data).Play()
}
