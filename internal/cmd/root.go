package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/timeboxd/timeboxd/internal/config"
	"github.com/timeboxd/timeboxd/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	DBPath      string           `help:"Path to the SQLite database (overrides $TIMEBOXD_HOME/state.db)" name:"db"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	Run       RunCmd       `cmd:"" help:"Run the timer and idle monitor with the dashboard (default)" default:"1"`
	Timeboxes TimeboxesCmd `cmd:"timeboxes" aliases:"tb" help:"Manage timeboxes (add, list, start, stop, ...)"`
	Settings  SettingsCmd  `cmd:"settings" help:"Manage settings (idle, meta)"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// AfterApply initializes logging after CLI parsing and applies settings.
// Precedence: CLI flags > env vars > settings.json > defaults.
func (c *CLI) AfterApply() error {
	if c.settings == nil {
		settings, err := config.LoadSettings()
		if err != nil {
			return err
		}
		c.settings = settings
	}

	if c.MaxLogFiles == logging.DefaultMaxLogFiles {
		if _, hasEnv := os.LookupEnv(logging.EnvMaxLogFiles); !hasEnv && c.settings.MaxLogFiles != nil {
			c.MaxLogFiles = *c.settings.MaxLogFiles
		}
	}

	if !c.Debug {
		if _, hasEnv := os.LookupEnv(logging.EnvDebug); !hasEnv && c.settings.Debug != nil && *c.settings.Debug {
			c.Debug = true
		}
	}

	if c.DBPath != "" {
		c.settings.DBPath = config.ExpandPath(c.DBPath)
	}

	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}
	if logFilePath != "" {
		logging.Logger.Info("Logging initialized", "file", logFilePath)
	}

	// Container needs the logger, GORM logs through it
	container, err := NewContainer(c.settings)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
