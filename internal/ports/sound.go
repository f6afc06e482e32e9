package ports

// SoundCue names a short audio cue
type SoundCue string

const (
	CueAutoStop SoundCue = "auto-stop"
	CueOvertime SoundCue = "overtime"
)

// SoundPlayer plays audio cues alongside notifications
type SoundPlayer interface {
	Play(cue SoundCue) error
}
