// Package app implements the udstrace subcommands on top of the decoding
// engine.
package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/optidiag/udstrace/internal/config"
	"github.com/optidiag/udstrace/internal/errors"
	"github.com/optidiag/udstrace/internal/logging"
	"github.com/optidiag/udstrace/internal/progress"
	"github.com/optidiag/udstrace/internal/report"
	"github.com/optidiag/udstrace/internal/session"
)

// DecodeOptions carries the decode subcommand's flags.
type DecodeOptions struct {
	InputFile  string
	ConfigFile string
	JSONFile   string
	Version    string
	Quiet      bool
	Logger     *logging.Logger
}

// RunDecode parses one trace file and renders the result: a styled summary
// on stdout and, when requested, a JSON report on disk.
func RunDecode(opts DecodeOptions) error {
	result, err := parseFile(opts.InputFile, opts.ConfigFile, opts.Quiet, opts.Logger)
	if err != nil {
		return err
	}

	if opts.Logger != nil {
		opts.Logger.LogParse(opts.InputFile, result.Meta.LinesTotal, result.Meta.LinesMatched,
			result.Meta.MessageCount, len(result.ECUs()), result.Errors.Total())
		for i := range result.Messages {
			m := &result.Messages[i]
			opts.Logger.LogHex(fmt.Sprintf("%s %s %s->%s", m.Timestamp, m.ServiceName(),
				m.Addr.Source, m.Addr.Target), m.Payload)
		}
	}

	if opts.JSONFile != "" {
		rep := report.NewSessionReport(opts.Version, opts.InputFile, result)
		if err := report.WriteJSONFile(opts.JSONFile, rep); err != nil {
			return errors.WrapReportError(err, opts.JSONFile)
		}
	}

	if !opts.Quiet {
		report.WriteSummary(os.Stdout, result)
	}
	return nil
}

// parseFile loads options, reads the trace and runs one engine pass.
func parseFile(inputFile, configFile string, quiet bool, logger *logging.Logger) (*session.Result, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	data, err := os.ReadFile(inputFile)
	if err != nil {
		return nil, errors.WrapTraceFileError(err, inputFile)
	}

	lines := strings.Split(string(data), "\n")
	bar := progress.NewLineProgress(int64(len(lines)), "decoding")
	if quiet || len(lines) < 10000 {
		bar.Disable()
	}

	assembler := session.NewAssembler(session.Options{
		SampleCap: cfg.SampleCap,
		LocalTag:  cfg.LocalTag,
		ECUNames:  cfg.ECUNames,
	})
	for _, line := range lines {
		assembler.AddLine(line)
		bar.Increment()
	}
	bar.Finish()

	result := assembler.Finalize()
	if logger != nil {
		logger.Verbose("decoded %s: %d messages, %d open-buffer discards",
			inputFile, result.Meta.MessageCount, result.Errors.IncompleteReassembly)
	}
	return result, nil
}
