package cmd

// TimeboxesCmd manages timeboxes
type TimeboxesCmd struct {
	Add           TimeboxesAddCmd       `cmd:"add" help:"Add a new timebox"`
	Archive       TimeboxesArchiveCmd   `cmd:"archive" help:"Archive a timebox"`
	Cancel        TimeboxesEventCmd     `cmd:"cancel" help:"Cancel the running session (its time is discarded)"`
	Del           TimeboxesDelCmd       `cmd:"del" help:"Delete a timebox and its sessions"`
	Edit          TimeboxesEditCmd      `cmd:"edit" help:"Edit intention, notes or duration"`
	Finish        TimeboxesEventCmd     `cmd:"finish" help:"Mark a running timebox as completed"`
	History       TimeboxesHistoryCmd   `cmd:"history" help:"Show the edit history of a timebox"`
	List          TimeboxesListCmd      `cmd:"list" help:"List today's timeboxes" default:"1"`
	Pause         TimeboxesEventCmd     `cmd:"pause" help:"Pause a running timebox"`
	Reorder       TimeboxesReorderCmd   `cmd:"reorder" help:"Set the display order of timeboxes"`
	Start         TimeboxesEventCmd     `cmd:"start" help:"Start or resume a timebox"`
	Stop          TimeboxesEventCmd     `cmd:"stop" help:"Stop a running timebox"`
	StopAfterTime TimeboxesEventCmd     `cmd:"stop-after-time" help:"Complete a timebox whose time is up"`
	Unarchive     TimeboxesUnarchiveCmd `cmd:"unarchive" help:"Restore an archived timebox"`
	View          TimeboxesViewCmd      `cmd:"view" help:"View a timebox with its sessions"`
}
