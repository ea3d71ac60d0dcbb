package cmd

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"jarvis/internal/config"
	"jarvis/internal/display"
	"jarvis/internal/logger"
	"jarvis/internal/registry"
)

// rootOptions holds the global flags and the configuration resolved from
// them. Every subcommand receives the same instance.
type rootOptions struct {
	debug      bool   // --debug: verbose logging
	configPath string // --config: config file, empty for the default location
	database   string // --database: overrides database_path from the config

	cfg config.Config
}

// newRootCmd builds the base command for the CLI tool `jarvis` and registers
// every subcommand on it.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{cfg: config.Default()}

	cmd := &cobra.Command{
		Use:   "jarvis",
		Short: "Registry of installed software and reference databases",
		Long: `jarvis manages a JSON file describing the programs and reference databases
installed on a server and displays it as human-readable text.

Name a program to get detail about it (previous versions, dependencies and the
commands it provides), or edit the registry to keep it current. Program names
may be abbreviated or slightly misspelled.`,
		SilenceUsage:  true,
		SilenceErrors: true,

		// PersistentPreRunE runs before any subcommand: set up logging, then
		// load the config file and apply flag overrides.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(opts.debug)

			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			if opts.database != "" {
				cfg.DatabasePath = opts.database
			}
			opts.cfg = cfg
			logger.Debug("[DEBUG] Using database %s\n", cfg.DatabasePath)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to configuration file (default "+config.DefaultPath()+")")
	cmd.PersistentFlags().StringVarP(&opts.database, "database", "b", "", "Use a custom JSON-formatted database file (default "+config.DefaultDatabasePath+")")

	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newShowCmd(opts))
	cmd.AddCommand(newEditCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))

	// Accept --list_categories as well as --list-categories.
	cmd.SetGlobalNormalizationFunc(normalizeFlagName)

	return cmd
}

// Execute runs the CLI and exits with status 1 on any failure. It is the
// only place in the program that terminates the process.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}
}

func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// printer returns a Printer writing to the command's stdout.
func (o *rootOptions) printer(cmd *cobra.Command) *display.Printer {
	return display.NewPrinter(cmd.OutOrStdout(), o.cfg.Width)
}

// loadStore reads the configured database. With allowMissing, a database
// file that does not exist yet yields an empty store so the first append can
// create it.
func (o *rootOptions) loadStore(allowMissing bool) (*registry.Store, error) {
	st, err := registry.LoadFile(o.cfg.DatabasePath)
	if err != nil {
		if allowMissing && errors.Is(err, fs.ErrNotExist) {
			logger.Warn("[WARN] Database %s does not exist yet; it will be created\n", o.cfg.DatabasePath)
			return registry.New(), nil
		}
		return nil, err
	}
	return st, nil
}

// saveStore writes st back to the configured database.
func (o *rootOptions) saveStore(st *registry.Store) error {
	if err := registry.SaveFile(o.cfg.DatabasePath, st); err != nil {
		return err
	}
	logger.Debug("[DEBUG] Saved %d entries to %s\n", st.Len(), o.cfg.DatabasePath)
	return nil
}
