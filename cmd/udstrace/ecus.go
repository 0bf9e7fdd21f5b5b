package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/optidiag/udstrace/internal/app"
	"github.com/optidiag/udstrace/internal/logging"
)

type ecusFlags struct {
	inputFile  string
	configFile string
}

func newECUsCmd() *cobra.Command {
	flags := &ecusFlags{}

	cmd := &cobra.Command{
		Use:   "ecus",
		Short: "Print the aggregated ECU knowledge for a trace",
		Long: `Parse a trace and print only the discovered-ECU map as JSON: addresses,
names, counters, services, trouble codes, data identifiers and routines.

If --input is omitted, the first positional argument is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.inputFile == "" && len(args) > 0 {
				flags.inputFile = args[0]
			}
			if flags.inputFile == "" {
				return missingFlagError(cmd, "--input")
			}
			logger, err := logging.NewLogger(logging.LogLevelError, "")
			if err != nil {
				return err
			}
			defer logger.Close()
			return app.RunECUs(app.ECUsOptions{
				InputFile:  flags.inputFile,
				ConfigFile: flags.configFile,
				Logger:     logger,
			})
		},
	}

	cmd.Flags().StringVar(&flags.inputFile, "input", "", "Input trace file (required)")
	cmd.Flags().StringVar(&flags.configFile, "config", "", "YAML decode options")

	return cmd
}

func missingFlagError(cmd *cobra.Command, flag string) error {
	return fmt.Errorf("%s requires %s (see 'udstrace %s --help')", cmd.Name(), flag, cmd.Name())
}
