// appsetup - one-time interactive setup wizard for this web project
package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var debugLogs bool
var resultPath string
var showEnvFile string

// mainSigCh receives SIGINT so Ctrl+C prints a clean message and exits 0
// instead of leaving the terminal in a half-rendered prompt.
var mainSigCh = make(chan os.Signal, 1)

var rootCmd = &cobra.Command{
	Use:           "appsetup",
	Short:         "Configure this project's environment files for a new deployment",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = initDebugLogger()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetupWizard(resultPath)
	},
}

var showCmd = &cobra.Command{
	Use:           "show",
	Short:         "Show the configuration currently stored in the env files",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(showEnvFile)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false,
		"Enable debug logging to tmp/appsetup-debug.log")
	rootCmd.Flags().StringVar(&resultPath, "result", "",
		"Write setup result to YAML/JSON file (optional)")
	showCmd.Flags().StringVar(&showEnvFile, "env", "",
		"Environment file to show (default: pick interactively)")
	rootCmd.AddCommand(showCmd)
}

func main() {
	signal.Notify(mainSigCh, os.Interrupt)
	go func() {
		<-mainSigCh
		restoreTTYOnExit()
		fmt.Println("\nCancelled.")
		os.Exit(0)
	}()

	if err := rootCmd.Execute(); err != nil {
		const (
			red    = "\033[31m"
			yellow = "\033[33m"
			cyan   = "\033[36m"
			reset  = "\033[0m"
		)
		if ue, ok := err.(*userError); ok {
			fmt.Fprintf(os.Stderr, "%sError:%s %s\n", red, reset, ue.Error())
			if hint := ue.Hint(); hint != "" {
				fmt.Fprintf(os.Stderr, "%sHint:%s %s%s%s\n", yellow, reset, cyan, hint, reset)
			}
		} else {
			fmt.Fprintf(os.Stderr, "%sError:%s %v\n", red, reset, err)
		}
		if debugCleanup != nil {
			debugCleanup()
		}
		os.Exit(1)
	}
	if debugCleanup != nil {
		debugCleanup()
	}
}
