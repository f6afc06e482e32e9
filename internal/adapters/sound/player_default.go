//go:build !darwin && !linux

package sound

import (
	"github.com/timeboxd/timeboxd/internal/domain"
	"github.com/timeboxd/timeboxd/internal/ports"
)

// playCue has no sound command on this platform
func playCue(cue ports.SoundCue) error {
	return domain.ErrPlatformUnsupported
}
