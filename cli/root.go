package cli

import (
	"fmt"
	"os"

	"git.thinkinpower.net/bindb/bdata"
	"git.thinkinpower.net/bindb/config"
	"git.thinkinpower.net/bindb/logging"
	"git.thinkinpower.net/bindb/output"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// RootOptions holds the flags shared by every command.
type RootOptions struct {
	ConfigPath string
	DataPath   string
	LogLevel   string

	Config config.Config
	DB     bdata.BinDatabase
}

// LookupOptions holds the flags of the root lookup command.
type LookupOptions struct {
	*RootOptions
	Bin     string
	File    string
	Output  string
	Format  string
	Color   bool
	NoColor bool
	Quiet   bool
	Workers int
}

func (o *LookupOptions) formatter() output.Formatter {
	return output.Formatter{Format: output.ParseFormat(o.Format), Color: o.Color && !o.NoColor}
}

// printRecords reports whether looked up records should be written at all.
func (o *LookupOptions) printRecords() bool {
	return !o.Quiet || o.Output != ""
}

// NewRootCommand creates the bindb command. All lookups go to db.
func NewRootCommand(db bdata.BinDatabase) *cobra.Command {
	rootOpts := &RootOptions{DB: db}
	opts := &LookupOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "bindb",
		Short: "Look up payment card BIN metadata",
		Long: `Look up issuer metadata (scheme, type, brand, bank, country) for a
Bank Identification Number: the first 6 to 8 digits of a card number.

Without --bin or --file an interactive prompt reads one BIN per line.

Examples:
  bindb --bin 457173
  bindb --file bins.txt --format csv --output result.csv
  bindb serve --port 8080
  bindb update`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&rootOpts.ConfigPath, "config", "", "YAML config file")
	pf.StringVarP(&rootOpts.DataPath, "data", "d", "", "BIN data CSV file (default \"data/bin_data.csv\")")
	pf.StringVar(&rootOpts.LogLevel, "log-level", "", "log level: debug, info, warn, error (default \"info\")")

	f := cmd.Flags()
	f.StringVar(&opts.Bin, "bin", "", "lookup a single BIN")
	f.StringVar(&opts.File, "file", "", "lookup every BIN listed in a file, one per line")
	f.StringVar(&opts.Output, "output", "", "write output to a file")
	f.StringVar(&opts.Format, "format", "pretty", "output format: pretty, json, csv")
	f.BoolVar(&opts.Color, "color", true, "enable colored output")
	f.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	f.BoolVar(&opts.Quiet, "quiet", false, "suppress record output unless --output is set")
	f.IntVar(&opts.Workers, "workers", 8, "concurrent lookups in --file mode")

	cmd.AddCommand(NewServeCommand(rootOpts))
	cmd.AddCommand(NewUpdateCommand(rootOpts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// setup resolves the configuration (flags over env over file over defaults)
// and configures logging.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(afero.NewOsFs(), o.ConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("data") {
		cfg.Data.Path = o.DataPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = o.LogLevel
	}
	o.Config = cfg
	logging.Setup(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	return nil
}

func runLookup(cmd *cobra.Command, opts *LookupOptions) error {
	out := cmd.OutOrStdout()
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return errors.Wrap(err, "failed to open output file")
		}
		defer f.Close()
		out = f
	}

	opts.DB.Load(opts.Config.Data.Path)

	switch {
	case opts.Bin != "":
		return lookupSingle(opts, out)
	case opts.File != "":
		return lookupBatch(cmd.Context(), opts, out, cmd.ErrOrStderr())
	default:
		return lookupInteractive(opts, cmd.InOrStdin(), cmd.OutOrStdout(), out, cmd.ErrOrStderr())
	}
}

// Execute runs the bindb command against the process-wide BIN table.
func Execute() {
	if err := NewRootCommand(bdata.Default()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
