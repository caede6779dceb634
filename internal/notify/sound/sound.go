// Package sound plays completion beeps through the default audio device.
package sound

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"

	"pomoflow/internal/notify"
)

const (
	sampleRate  = beep.SampleRate(44100)
	startGain   = 0.1
	endGain     = 0.01
	speakerSpan = 100 * time.Millisecond
)

// Tone is a short decaying sine beep.
type Tone struct {
	Frequency float64
	Duration  time.Duration
}

// ToneFor returns the beep played for kind: higher and longer after work.
func ToneFor(kind notify.Kind) Tone {
	if kind == notify.WorkComplete {
		return Tone{Frequency: 660, Duration: 500 * time.Millisecond}
	}
	return Tone{Frequency: 440, Duration: 300 * time.Millisecond}
}

// Streamer renders the tone at rate with an exponential fade from startGain
// to endGain.
func (tone Tone) Streamer(rate beep.SampleRate) beep.Streamer {
	total := rate.N(tone.Duration)
	position := 0
	sine := beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if position >= total {
				return i, i > 0
			}
			progress := float64(position) / float64(total)
			gain := startGain * math.Pow(endGain/startGain, progress)
			value := gain * math.Sin(2*math.Pi*tone.Frequency*float64(position)/float64(rate))
			samples[i][0] = value
			samples[i][1] = value
			position++
		}
		return len(samples), true
	})
	return beep.Take(total, sine)
}

// Player plays completion beeps on the default audio device. The device is
// opened on first use; if that fails the sink stays silent.
type Player struct {
	enabled func() bool
	volume  float64
	logger  *slog.Logger

	initOnce sync.Once
	initErr  error
}

// New returns a beep sink. enabled is consulted on every signal so the
// preference can change at runtime; volume is in beep's log2 scale, 0 leaves
// the tone unchanged.
func New(enabled func() bool, volume float64, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{enabled: enabled, volume: volume, logger: logger}
}

// Notify plays the tone for kind without waiting for it to finish.
func (player *Player) Notify(kind notify.Kind) {
	if player.enabled != nil && !player.enabled() {
		return
	}
	if err := player.init(); err != nil {
		return
	}
	speaker.Play(player.stream(kind))
}

func (player *Player) stream(kind notify.Kind) beep.Streamer {
	return &effects.Volume{
		Streamer: ToneFor(kind).Streamer(sampleRate),
		Base:     2,
		Volume:   player.volume,
		Silent:   false,
	}
}

func (player *Player) init() error {
	player.initOnce.Do(func() {
		if err := speaker.Init(sampleRate, sampleRate.N(speakerSpan)); err != nil {
			player.initErr = fmt.Errorf("init speaker: %w", err)
			player.logger.Warn("audio unavailable, completion beeps disabled", "error", player.initErr)
		}
	})
	return player.initErr
}
