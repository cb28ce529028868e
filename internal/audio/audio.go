// Package audio plays procedurally generated cues for gameplay events.
package audio

import (
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"github.com/sirupsen/logrus"

	"corridor/internal/game"
)

// maxVoices caps simultaneous cues; spawns can burst every tick.
const maxVoices = 6

// System owns the output context and the pre-rendered cues.
type System struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
	sounds [soundCount][]byte
	voices int32
	log    *logrus.Logger
}

// New opens the output device. Cues are rendered once up front.
func New(volume float64, log *logrus.Logger) (*System, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	s := &System{ctx: ctx, ready: ready, volume: volume, log: log}
	for k := Sound(0); k < soundCount; k++ {
		s.sounds[k] = generate(k)
	}
	return s, nil
}

// Play starts sound and returns at once. It is dropped while the device is
// still starting up or too many cues are already playing.
func (s *System) Play(sound Sound, gain float64) {
	if s == nil || gain <= 0 || sound < 0 || sound >= soundCount {
		return
	}
	select {
	case <-s.ready:
	default:
		return
	}
	if atomic.AddInt32(&s.voices, 1) > maxVoices {
		atomic.AddInt32(&s.voices, -1)
		return
	}
	data := s.sounds[sound]
	go func() {
		defer atomic.AddInt32(&s.voices, -1)
		player := s.ctx.NewPlayer(&soundReader{data: data})
		player.SetVolume(s.volume * clamp01(gain))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil && s.log != nil {
			s.log.WithError(err).WithField("sound", sound).Warn("close player")
		}
	}()
}

// Cue maps a gameplay event to a sound and gain.
func Cue(e game.Event) (Sound, float64, bool) {
	switch e.Type {
	case game.EventJump:
		return SoundJump, 0.8, true
	case game.EventCheckpoint:
		return SoundCheckpoint, 1, true
	case game.EventObstacleSpawned:
		return SoundSpawn, 0.25, true
	case game.EventEpisodeReset:
		return SoundReset, 1, true
	case game.EventIntroDismissed:
		return SoundIntro, 0.6, true
	}
	return 0, 0, false
}

// Attach plays a cue for every mapped event on bus.
func (s *System) Attach(bus *game.EventBus) {
	bus.SubscribeAll(func(e game.Event) {
		if sound, gain, ok := Cue(e); ok {
			s.Play(sound, gain)
		}
	})
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
