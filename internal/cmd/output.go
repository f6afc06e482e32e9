package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/timeboxd/timeboxd/internal/domain"
	"github.com/timeboxd/timeboxd/internal/ui"
)

const timeLayout = "2006-01-02 15:04:05"

// timeboxView is the JSON shape of a timebox. Durations are in seconds.
type timeboxView struct {
	ActualSeconds      int64                `json:"actual_seconds"`
	AfterTimeStoppedAt *time.Time           `json:"after_time_stopped_at,omitempty"`
	ArchivedAt         *time.Time           `json:"archived_at,omitempty"`
	AutoStoppedAt      *time.Time           `json:"auto_stopped_at,omitempty"`
	CanceledAt         *time.Time           `json:"canceled_at,omitempty"`
	CompletedAt        *time.Time           `json:"completed_at,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	DisplayOrder       *int                 `json:"display_order,omitempty"`
	ExternalRef        string               `json:"external_ref,omitempty"`
	ID                 int64                `json:"id"`
	IntendedSeconds    int64                `json:"intended_seconds"`
	Intention          string               `json:"intention"`
	Notes              *string              `json:"notes,omitempty"`
	RemainingSeconds   int64                `json:"remaining_seconds"`
	Sessions           []sessionView        `json:"sessions,omitempty"`
	StartedAt          *time.Time           `json:"started_at,omitempty"`
	Status             domain.TimeboxStatus `json:"status"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

type sessionView struct {
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	EndReason   string     `json:"end_reason,omitempty"`
	ExpiredAt   *time.Time `json:"expired_at,omitempty"`
	ID          int64      `json:"id"`
	StartedAt   time.Time  `json:"started_at"`
	StoppedAt   *time.Time `json:"stopped_at,omitempty"`
}

func newTimeboxView(tb *domain.Timebox, now time.Time, withSessions bool) timeboxView {
	v := timeboxView{
		ActualSeconds:      int64(tb.ActualDuration(now) / time.Second),
		AfterTimeStoppedAt: tb.AfterTimeStoppedAt,
		ArchivedAt:         tb.ArchivedAt,
		AutoStoppedAt:      tb.AutoStoppedAt,
		CanceledAt:         tb.CanceledAt,
		CompletedAt:        tb.CompletedAt,
		CreatedAt:          tb.CreatedAt,
		DisplayOrder:       tb.DisplayOrder,
		ExternalRef:        tb.ExternalRef,
		ID:                 tb.ID,
		IntendedSeconds:    tb.IntendedDuration,
		Intention:          tb.Intention,
		Notes:              tb.Notes,
		RemainingSeconds:   tb.Remaining(now),
		StartedAt:          tb.StartedAt,
		Status:             tb.Status,
		UpdatedAt:          tb.UpdatedAt,
	}
	if withSessions {
		for _, s := range tb.Sessions {
			sv := sessionView{
				CancelledAt: s.CancelledAt,
				ExpiredAt:   s.ExpiredAt,
				ID:          s.ID,
				StartedAt:   s.StartedAt,
				StoppedAt:   s.StoppedAt,
			}
			if s.EndReason != nil {
				sv.EndReason = string(*s.EndReason)
			}
			v.Sessions = append(v.Sessions, sv)
		}
	}
	return v
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printTimeboxTable(timeboxes []domain.Timebox, now time.Time) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tINTENTION\tINTENDED\tREMAINING\tCREATED")
	for i := range timeboxes {
		tb := &timeboxes[i]
		fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\t%s\t%s\n",
			tb.ID,
			tb.Status.Symbol(),
			tb.Status,
			tb.Intention,
			ui.FormatIntended(tb.IntendedDuration),
			ui.FormatCountdown(tb.Remaining(now)),
			tb.CreatedAt.Local().Format(timeLayout))
	}
	w.Flush()

	fmt.Printf("\nTotal: %d timeboxes\n", len(timeboxes))
}

func printTimebox(tb *domain.Timebox, now time.Time) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%d\n", tb.ID)
	fmt.Fprintf(w, "Intention:\t%s\n", tb.Intention)
	if tb.Notes != nil {
		fmt.Fprintf(w, "Notes:\t%s\n", *tb.Notes)
	}
	fmt.Fprintf(w, "Status:\t%s %s\n", tb.Status.Symbol(), tb.Status)
	fmt.Fprintf(w, "Intended:\t%s\n", ui.FormatIntended(tb.IntendedDuration))
	fmt.Fprintf(w, "Actual:\t%s\n", ui.FormatIntended(int64(tb.ActualDuration(now)/time.Second)))
	fmt.Fprintf(w, "Remaining:\t%s\n", ui.FormatCountdown(tb.Remaining(now)))
	fmt.Fprintf(w, "Created:\t%s\n", tb.CreatedAt.Local().Format(timeLayout))
	if tb.ArchivedAt != nil {
		fmt.Fprintf(w, "Archived:\t%s\n", tb.ArchivedAt.Local().Format(timeLayout))
	}
	if tb.AfterTimeStoppedAt != nil {
		fmt.Fprintf(w, "Stopped after time:\t%s\n", tb.AfterTimeStoppedAt.Local().Format(timeLayout))
	}
	if tb.AutoStoppedAt != nil {
		fmt.Fprintf(w, "Auto-stopped:\t%s\n", tb.AutoStoppedAt.Local().Format(timeLayout))
	}
	w.Flush()

	if len(tb.Sessions) == 0 {
		return
	}
	fmt.Println("\nSessions:")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tENDED\tREASON\tELAPSED")
	for _, s := range tb.Sessions {
		ended := "running"
		switch {
		case s.StoppedAt != nil:
			ended = s.StoppedAt.Local().Format(timeLayout)
		case s.CancelledAt != nil:
			ended = s.CancelledAt.Local().Format(timeLayout)
		}
		reason := ""
		if s.EndReason != nil {
			reason = string(*s.EndReason)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			s.ID,
			s.StartedAt.Local().Format(timeLayout),
			ended,
			reason,
			ui.FormatIntended(int64(s.Elapsed(now)/time.Second)))
	}
	w.Flush()
}

func printChangeLog(changes []domain.TimeboxChange) {
	if len(changes) == 0 {
		fmt.Println("No changes recorded")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "UPDATED\tFIELD\tFROM\tTO")
	for _, c := range changes {
		updated := c.UpdatedAt.Local().Format(timeLayout)
		if c.UpdatedIntention != nil {
			fmt.Fprintf(w, "%s\tintention\t%s\t%s\n", updated, derefOr(c.PreviousIntention, "-"), *c.UpdatedIntention)
		}
		if c.UpdatedNotes != nil {
			fmt.Fprintf(w, "%s\tnotes\t%s\t%s\n", updated, derefOr(c.PreviousNotes, "-"), *c.UpdatedNotes)
		}
		if c.NewIntendedDuration != nil {
			from := "-"
			if c.PreviousIntendedDuration != nil {
				from = ui.FormatIntended(*c.PreviousIntendedDuration)
			}
			fmt.Fprintf(w, "%s\tduration\t%s\t%s\n", updated, from, ui.FormatIntended(*c.NewIntendedDuration))
		}
	}
	w.Flush()
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
