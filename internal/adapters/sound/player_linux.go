//go:build linux

package sound

import (
	"errors"
	"os/exec"

	"github.com/timeboxd/timeboxd/internal/ports"
)

// freedesktop sound theme event ids
var cueEvents = map[ports.SoundCue]string{
	ports.CueAutoStop: "complete",
	ports.CueOvertime: "alarm-clock-elapsed",
}

// playCue plays theme sounds on Linux using canberra-gtk-play
func playCue(cue ports.SoundCue) error {
	path, err := exec.LookPath("canberra-gtk-play")
	if err != nil {
		return errors.New("canberra-gtk-play not found")
	}

	event, ok := cueEvents[cue]
	if !ok {
		event = "bell"
	}

	cmd := exec.Command(path, "--id", event)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
