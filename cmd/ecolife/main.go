package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ecolife/ecolife-cli/internal/cli"
	"github.com/ecolife/ecolife-cli/internal/cli/backups"
	"github.com/ecolife/ecolife-cli/internal/cli/insights"
	"github.com/ecolife/ecolife-cli/internal/cli/learn"
	"github.com/ecolife/ecolife-cli/internal/cli/records"
	"github.com/ecolife/ecolife-cli/internal/cli/settings"
	"github.com/ecolife/ecolife-cli/internal/cli/system"
	"github.com/ecolife/ecolife-cli/internal/config"
	"github.com/ecolife/ecolife-cli/internal/constants"
	apperrors "github.com/ecolife/ecolife-cli/internal/errors"
	"github.com/ecolife/ecolife-cli/internal/logger"
	"github.com/ecolife/ecolife-cli/internal/session"
	"github.com/ecolife/ecolife-cli/internal/utils"
)

var CLI struct {
	Version   kong.VersionFlag
	ConfigDir string `help:"Directory holding config.yaml, the local database and logs." type:"path" default:"${config_dir}"`
	Debug     bool   `help:"Log debug output to stderr."`
	Tz        string `help:"IANA timezone used to decide what 'today' is (overrides config)."`

	Init    system.InitCmd    `cmd:"" help:"Initialize ecolife storage and write a default config."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive dashboard." default:"1"`

	Login  system.LoginCmd  `cmd:"" help:"Sign in as a user."`
	Logout system.LogoutCmd `cmd:"" help:"Sign out."`
	Whoami system.WhoamiCmd `cmd:"" help:"Show the signed-in user."`

	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show keyring availability." default:"1"`
	} `cmd:"" help:"Manage credentials in the OS keyring."`

	Eco struct {
		Mark records.EcoMarkCmd `cmd:"" help:"Mark the daily eco action done." default:"withargs"`
	} `cmd:"" help:"Record the daily eco action."`
	Challenge struct {
		Mark records.ChallengeMarkCmd `cmd:"" help:"Mark the daily challenge done." default:"withargs"`
	} `cmd:"" help:"Record the daily challenge."`
	History struct {
		List   records.HistoryListCmd   `cmd:"" help:"List recent day records." default:"withargs"`
		Delete records.HistoryDeleteCmd `cmd:"" help:"Delete the record for a day."`
	} `cmd:"" help:"Browse and edit past days."`
	Validate records.ValidateCmd `cmd:"" help:"Check stored records for problems."`

	Today    insights.TodayCmd    `cmd:"" help:"Show today's record and streaks."`
	Streak   insights.StreakCmd   `cmd:"" help:"Show current streaks."`
	Week     insights.WeekCmd     `cmd:"" help:"Show the last seven days."`
	Calendar insights.CalendarCmd `cmd:"" help:"Show a calendar heat grid."`

	Tip   learn.TipCmd `cmd:"" help:"Show the tip of the day."`
	Facts struct {
		Next  learn.FactsNextCmd  `cmd:"" help:"Draw new recycling facts." default:"1"`
		Last  learn.FactsLastCmd  `cmd:"" help:"Show the last facts drawn."`
		Reset learn.FactsResetCmd `cmd:"" help:"Start the facts rotation over."`
	} `cmd:"" help:"Recycling facts."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Settings settings.SettingsCmd `cmd:"" help:"Show or change settings in config.yaml."`
}

// Commands that manage storage, credentials or the session themselves.
var selfManaged = map[string]bool{
	"init":     true,
	"migrate":  true,
	"doctor":   true,
	"tui":      true,
	"login":    true,
	"logout":   true,
	"whoami":   true,
	"keyring":  true,
	"backup":   true,
	"settings": true,
}

// Commands that never touch the record backend.
var noBackend = map[string]bool{
	"login":    true,
	"logout":   true,
	"whoami":   true,
	"keyring":  true,
	"settings": true,
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name(constants.AppName),
		kong.Description("Daily eco actions, challenges and streaks"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":    constants.Version,
			"config_dir": constants.DefaultConfigDir,
		},
	}
}

func main() {
	ctx := kong.Parse(&CLI, options()...)

	apperrors.Fatal(run(ctx))
}

func run(kctx *kong.Context) error {
	dir, err := config.ExpandPath(CLI.ConfigDir)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: dir}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	if CLI.Tz != "" {
		if !utils.ValidateTimezone(CLI.Tz) {
			return fmt.Errorf("invalid timezone: %s", CLI.Tz)
		}
		cfg.Timezone = CLI.Tz
	}
	if CLI.Debug {
		cfg.Debug = true
	} else if cfg.Debug {
		// Debug turned on in config.yaml rather than by flag.
		if err := logger.Init(logger.Config{Debug: true, ConfigDir: dir}); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
	}
	logger.Debug("Starting", "command", kctx.Command(), "config_dir", dir, "backend", cfg.Backend)

	command := strings.Fields(kctx.Command())
	name := ""
	if len(command) > 0 {
		name = command[0]
	}

	appCtx, err := cli.NewContext(cfg)
	if err != nil {
		if !noBackend[name] {
			return err
		}
		// Credentials and settings must be manageable before the database is reachable.
		logger.Debug("Record backend unavailable", "error", err)
		appCtx = &cli.Context{Config: cfg, Session: session.KeyringSource{}}
	}
	defer func() {
		if err := appCtx.Close(); err != nil {
			logger.Debug("Failed to close storage", "error", err)
		}
	}()

	if name != "" && !selfManaged[name] {
		if err := appCtx.Open(context.Background()); err != nil {
			return err
		}
	}

	return kctx.Run(appCtx)
}
