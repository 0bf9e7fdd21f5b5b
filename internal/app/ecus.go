package app

import (
	"os"

	"github.com/optidiag/udstrace/internal/logging"
	"github.com/optidiag/udstrace/internal/report"
)

// ECUsOptions carries the ecus subcommand's flags.
type ECUsOptions struct {
	InputFile  string
	ConfigFile string
	Logger     *logging.Logger
}

// RunECUs parses one trace file and prints only the aggregated ECU
// knowledge, for callers that do not need the message list.
func RunECUs(opts ECUsOptions) error {
	result, err := parseFile(opts.InputFile, opts.ConfigFile, true, opts.Logger)
	if err != nil {
		return err
	}
	return report.WriteJSON(os.Stdout, result.ECUs())
}
