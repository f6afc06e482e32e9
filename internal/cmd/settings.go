package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/timeboxd/timeboxd/internal/config"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Idle SettingsIdleCmd `cmd:"idle" help:"Show or change idle auto-stop settings"`
	Meta SettingsMetaCmd `cmd:"meta" help:"Show settings file location and available options" default:"1"`
}

// SettingsIdleCmd shows or updates the idle auto-stop settings stored in the database
type SettingsIdleCmd struct {
	AutoStop string `help:"Turn idle auto-stop on or off" enum:"keep,on,off" default:"keep"`
	Format   string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Timeout  int    `help:"Minutes of inactivity before running timeboxes are stopped (1-30)"`
}

// Run executes the idle command
func (s *SettingsIdleCmd) Run(container *Container) error {
	ctx := context.Background()
	svc := container.SettingsService

	var enabled *bool
	if s.AutoStop != "keep" {
		on := s.AutoStop == "on"
		enabled = &on
	}
	var timeout *int
	if s.Timeout != 0 {
		timeout = &s.Timeout
	}

	settings, err := svc.IdleSettings(ctx)
	if enabled != nil || timeout != nil {
		settings, err = svc.UpdateIdleSettings(ctx, enabled, timeout)
	}
	if err != nil {
		return err
	}

	if s.Format == "json" {
		return printJSON(map[string]any{
			"auto_stop_enabled":    settings.Enabled,
			"idle_timeout_minutes": settings.TimeoutMinutes,
		})
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "auto_stop_enabled\t%t\n", settings.Enabled)
	fmt.Fprintf(w, "idle_timeout_minutes\t%d\n", settings.TimeoutMinutes)
	return w.Flush()
}

// SettingsMetaCmd displays settings metadata
type SettingsMetaCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the meta command
func (s *SettingsMetaCmd) Run() error {
	settingsFile := config.GetSettingsPath()
	example := config.GetSettingsExample()

	if s.Format == "json" {
		return printJSON(map[string]any{
			"settings_file": settingsFile,
			"format":        example,
		})
	}

	fmt.Printf("Settings file: %s\n\n", settingsFile)
	fmt.Println("Example settings.json:")
	fmt.Println()

	keys := make([]string, 0, len(example))
	for k := range example {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%v\n", k, example[k])
	}
	w.Flush()

	fmt.Println()
	fmt.Println("Idle auto-stop settings live in the database: see `timeboxd settings idle`.")
	fmt.Println("All settings are optional and have sensible defaults.")
	return nil
}
