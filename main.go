package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/artfolio/internal/catalog"
	"github.com/hay-kot/artfolio/internal/commands"
	"github.com/hay-kot/artfolio/internal/core/config"
	"github.com/hay-kot/artfolio/internal/core/history"
	"github.com/hay-kot/artfolio/internal/printer"
	"github.com/hay-kot/artfolio/internal/store"
	"github.com/hay-kot/artfolio/internal/store/jsonfile"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

// diagnostics run even when the catalog or its history cannot be opened, so
// they can report what is wrong. The history command also tolerates a
// damaged history file so it can be cleared.
var diagnostics = map[string]bool{
	"doctor": true,
	"config": true,
	"doc":    true,
}

func main() {
	if err := setupLogger("info", ""); err != nil {
		panic(err)
	}

	var (
		p     = printer.New(os.Stderr)
		ctx   = printer.NewContext(context.Background(), p)
		flags = &commands.Flags{}
	)

	app := &cli.Command{
		Name:      "artfolio",
		Usage:     "Catalog artworks with undo and redo",
		UsageText: "artfolio [global options] command [command options]",
		Description: `artfolio keeps a catalog of artworks (title, artist, year, type) in a
delimited file, a JSON file or a SQLite database.

Every add, update and remove can be undone with 'artfolio undo' and
re-applied with 'artfolio redo', even across separate runs.

Run 'artfolio shell' for an interactive session.
Run 'artfolio doc formats' to see how catalogs are stored.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("ARTFOLIO_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (optional)",
				Sources:     cli.EnvVars("ARTFOLIO_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("ARTFOLIO_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("ARTFOLIO_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "store",
				Usage:       "store kind, overrides the config (delimited, structured, sqlite, memory)",
				Sources:     cli.EnvVars("ARTFOLIO_STORE"),
				Destination: &flags.StoreKind,
			},
			&cli.StringFlag{
				Name:        "file",
				Usage:       "catalog file, overrides the config",
				Sources:     cli.EnvVars("ARTFOLIO_FILE"),
				Destination: &flags.StorePath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := setupLogger(flags.LogLevel, flags.LogFile); err != nil {
				return ctx, err
			}

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if err := applyOverrides(cfg, flags); err != nil {
				return ctx, err
			}
			flags.Config = cfg

			name := c.Args().First()

			if err := openService(cfg, flags); err != nil {
				if !diagnostics[name] {
					return ctx, err
				}
				log.Warn().Err(err).Msg("catalog unavailable")
				return ctx, nil
			}

			if err := flags.Service.Load(ctx); err != nil {
				if !diagnostics[name] && name != "history" {
					return ctx, err
				}
				log.Warn().Err(err).Msg("continuing without saved history")
			}

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if flags.Store == nil {
				return nil
			}
			if err := store.Close(flags.Store); err != nil {
				return fmt.Errorf("close store: %w", err)
			}
			return nil
		},
	}

	app = commands.NewLsCmd(flags).Register(app)
	app = commands.NewAddCmd(flags).Register(app)
	app = commands.NewUpdateCmd(flags).Register(app)
	app = commands.NewRmCmd(flags).Register(app)
	app = commands.NewUndoCmd(flags).Register(app)
	app = commands.NewHistoryCmd(flags).Register(app)
	app = commands.NewImportCmd(flags).Register(app)
	app = commands.NewExportCmd(flags).Register(app)
	app = commands.NewShellCmd(flags).Register(app)
	app = commands.NewDoctorCmd(flags).Register(app)
	app = commands.NewConfigCmd(flags).Register(app)
	app = commands.NewDocCmd(flags).Register(app)

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Println()
		printer.Ctx(ctx).FatalError(err)
		exitCode = 1
	}

	os.Exit(exitCode)
}

// applyOverrides layers --store and --file over the config file.
func applyOverrides(cfg *config.Config, flags *commands.Flags) error {
	if flags.StoreKind != "" {
		kind, err := store.ParseKind(flags.StoreKind)
		if err != nil {
			return err
		}
		cfg.Store.Kind = string(kind)
		// A kind change invalidates a path chosen for the old kind.
		if flags.StorePath == "" {
			cfg.Store.Path = ""
		}
	}
	if flags.StorePath != "" {
		cfg.Store.Path = flags.StorePath
	}
	return nil
}

// openService opens the store and wires history and its journal into a
// catalog service. Saved history is not restored here.
func openService(cfg *config.Config, flags *commands.Flags) error {
	s, err := store.Open(cfg.Store.Kind, cfg.CatalogFile(), log.Logger)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	flags.Store = s

	hist := history.New(history.Options{
		MaxEntries: cfg.History.MaxEntries,
		Strict:     cfg.History.Strict,
	}, log.With().Str("component", "history").Logger())

	if cfg.PersistHistory() {
		flags.Journal = jsonfile.NewJournalStore(cfg.JournalFile())
	}

	flags.Service = catalog.New(s, hist, flags.Journal, log.With().Str("component", "catalog").Logger())
	return nil
}

func setupLogger(level string, logFile string) error {
	parsedLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	var output io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}

	if logFile != "" {
		// Create log directory if it doesn't exist
		logDir := filepath.Dir(logFile)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		// Open log file
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}

		// Write to both console and file
		output = io.MultiWriter(
			zerolog.ConsoleWriter{Out: os.Stderr},
			file,
		)
	}

	log.Logger = log.Output(output).Level(parsedLevel)

	return nil
}
