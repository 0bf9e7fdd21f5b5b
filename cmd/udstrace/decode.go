package main

import (
	"github.com/spf13/cobra"

	"github.com/optidiag/udstrace/internal/app"
	"github.com/optidiag/udstrace/internal/logging"
)

type decodeFlags struct {
	inputFile  string
	configFile string
	jsonFile   string
	logFile    string
	verbose    bool
	debug      bool
	quiet      bool
}

func newDecodeCmd() *cobra.Command {
	flags := &decodeFlags{}

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a diagnostic trace file",
		Long: `Decode a capture log: reassemble ISO-TP segments, classify UDS/OBD-II
services, aggregate per-ECU knowledge and report parse-quality counters.

If --input is omitted, the first positional argument is used.`,
		Example: `  # Summarize a session on stdout
  udstrace decode --input 8873778.txt

  # Full machine-readable report
  udstrace decode --input 8873778.txt --json session.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.inputFile == "" && len(args) > 0 {
				flags.inputFile = args[0]
			}
			if flags.inputFile == "" {
				return missingFlagError(cmd, "--input")
			}
			logger, err := newLogger(flags.verbose, flags.debug, flags.quiet, flags.logFile)
			if err != nil {
				return err
			}
			defer logger.Close()
			return app.RunDecode(app.DecodeOptions{
				InputFile:  flags.inputFile,
				ConfigFile: flags.configFile,
				JSONFile:   flags.jsonFile,
				Version:    version,
				Quiet:      flags.quiet,
				Logger:     logger,
			})
		},
	}

	cmd.Flags().StringVar(&flags.inputFile, "input", "", "Input trace file (required)")
	cmd.Flags().StringVar(&flags.configFile, "config", "", "YAML decode options")
	cmd.Flags().StringVar(&flags.jsonFile, "json", "", "Write full JSON report to this path")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "Also write log output to this file")
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, "Verbose logging")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "Debug logging incl. payload hex dumps")
	cmd.Flags().BoolVar(&flags.quiet, "quiet", false, "Suppress the stdout summary")

	return cmd
}

func newLogger(verbose, debug, quiet bool, logFile string) (*logging.Logger, error) {
	level := logging.LogLevelInfo
	switch {
	case debug:
		level = logging.LogLevelDebug
	case verbose:
		level = logging.LogLevelVerbose
	case quiet:
		level = logging.LogLevelError
	}
	return logging.NewLogger(level, logFile)
}
