package audio

import (
	"errors"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrDisabled is returned by New when audio is turned off in the config.
var ErrDisabled = errors.New("audio: disabled")

// Options names the files to play. Empty paths skip that sound.
type Options struct {
	Enabled bool
	Music   string
	Bounce  string
	Volume  float32
}

// Manager owns the audio device, a looping music stream and a one-shot bounce cue.
// All methods must be called from the main (window) thread.
type Manager struct {
	music     rl.Music
	hasMusic  bool
	bounce    rl.Sound
	hasBounce bool
	paused    bool
}

// New opens the audio device and loads whatever files exist. A missing file is reported
// in the returned error but does not stop the other sound from loading; the Manager is
// usable whenever it is non-nil.
func New(opts Options) (*Manager, error) {
	if !opts.Enabled {
		return nil, ErrDisabled
	}
	rl.InitAudioDevice()
	if !rl.IsAudioDeviceReady() {
		return nil, errors.New("audio: device not ready")
	}
	if opts.Volume > 0 {
		rl.SetMasterVolume(opts.Volume)
	}

	m := &Manager{}
	var errs []error
	if opts.Music != "" {
		if err := exists(opts.Music); err != nil {
			errs = append(errs, err)
		} else {
			m.music = rl.LoadMusicStream(opts.Music)
			m.music.Looping = true
			m.hasMusic = rl.IsMusicValid(m.music)
		}
	}
	if opts.Bounce != "" {
		if err := exists(opts.Bounce); err != nil {
			errs = append(errs, err)
		} else {
			m.bounce = rl.LoadSound(opts.Bounce)
			m.hasBounce = rl.IsSoundValid(m.bounce)
		}
	}
	return m, errors.Join(errs...)
}

func exists(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	return nil
}

// Play starts the music loop.
func (m *Manager) Play() {
	if m == nil || !m.hasMusic {
		return
	}
	rl.PlayMusicStream(m.music)
}

// Update feeds the music stream. Call once per frame.
func (m *Manager) Update() {
	if m == nil || !m.hasMusic || m.paused {
		return
	}
	rl.UpdateMusicStream(m.music)
}

// SetPaused pauses or resumes the music.
func (m *Manager) SetPaused(paused bool) {
	if m == nil || !m.hasMusic || paused == m.paused {
		return
	}
	m.paused = paused
	if paused {
		rl.PauseMusicStream(m.music)
	} else {
		rl.ResumeMusicStream(m.music)
	}
}

// PlayBounce plays the collision cue, restarting it if already playing.
func (m *Manager) PlayBounce() {
	if m == nil || !m.hasBounce {
		return
	}
	rl.PlaySound(m.bounce)
}

// Close unloads the sounds and closes the device.
func (m *Manager) Close() {
	if m == nil {
		return
	}
	if m.hasMusic {
		rl.StopMusicStream(m.music)
		rl.UnloadMusicStream(m.music)
	}
	if m.hasBounce {
		rl.UnloadSound(m.bounce)
	}
	rl.CloseAudioDevice()
}
