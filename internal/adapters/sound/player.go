package sound

import (
	"fmt"
	"io"
	"os"

	"github.com/timeboxd/timeboxd/internal/logging"
	"github.com/timeboxd/timeboxd/internal/ports"
)

// Player implements ports.SoundPlayer
type Player struct {
	bell    io.Writer
	enabled bool
}

var _ ports.SoundPlayer = (*Player)(nil)

// NewPlayer creates a new sound player. A disabled player is silent.
func NewPlayer(enabled bool) *Player {
	return &Player{bell: os.Stderr, enabled: enabled}
}

// Play plays the cue. Platform-specific implementations are in player_*.go
// files with build tags; all of them fall back to the terminal bell.
func (p *Player) Play(cue ports.SoundCue) error {
	if !p.enabled {
		return nil
	}
	logging.Logger.Debug("Playing sound cue", "cue", cue)
	if err := playCue(cue); err != nil {
		logging.Logger.Debug("Sound command failed, using terminal bell", "cue", cue, "error", err)
		return p.terminalBell()
	}
	return nil
}

// terminalBell outputs a terminal bell character
func (p *Player) terminalBell() error {
	_, err := fmt.Fprint(p.bell, "\a")
	return err
}
