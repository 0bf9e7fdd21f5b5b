package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "udstrace",
		Short: "Diagnostic trace decoder and ECU discovery tool",
		Long: `udstrace reconstructs the diagnostic conversation from a capture log of a
UDS/OBD-II session over CAN/ISO-TP or DoIP: who said what, in which service,
and which trouble codes, data identifiers and routines were exchanged.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newECUsCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
