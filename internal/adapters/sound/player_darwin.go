//go:build darwin

package sound

import (
	"os/exec"

	"github.com/timeboxd/timeboxd/internal/ports"
)

// playCue plays system sounds on macOS using afplay
func playCue(cue ports.SoundCue) error {
	var soundFiles []string

	switch cue {
	case ports.CueAutoStop:
		soundFiles = []string{
			"/System/Library/Sounds/Glass.aiff",
			"/System/Library/Sounds/Tink.aiff",
		}
	case ports.CueOvertime:
		soundFiles = []string{
			"/System/Library/Sounds/Ping.aiff",
			"/System/Library/Sounds/Glass.aiff",
		}
	default:
		soundFiles = []string{"/System/Library/Sounds/Glass.aiff"}
	}

	var err error
	for _, soundFile := range soundFiles {
		cmd := exec.Command("afplay", soundFile)
		if err = cmd.Start(); err == nil {
			go func() { _ = cmd.Wait() }()
			return nil
		}
	}
	return err
}
