package domain

// TimerState is the derived countdown of one running session. It is never persisted.
type TimerState struct {
	ElapsedSeconds   int64
	Expired          bool
	IntendedSeconds  int64
	Intention        string
	RemainingSeconds int64
	SessionID        int64
	TimeboxID        int64
}

// OvertimeSeconds returns how far past the budget the session is
func (s TimerState) OvertimeSeconds() int64 {
	if s.RemainingSeconds >= 0 {
		return 0
	}
	return -s.RemainingSeconds
}
