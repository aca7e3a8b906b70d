package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/secretlit/secretlit/internal/app"
	"github.com/secretlit/secretlit/internal/githubclient"
	"github.com/secretlit/secretlit/internal/logging"
)

var (
	flagConfig          string
	flagFormat          string
	flagInclude         string
	flagDisable         string
	flagSkipConfigFiles bool
	flagDebug           bool

	flagOrg       string
	flagDest      string
	flagSkipClone bool
)

// errFindings marks a scan that completed but found issues. Returning it
// instead of exiting inside RunE lets deferred cleanup (logger flush) run;
// main maps it to exit code 1.
var errFindings = errors.New("hardcoded secrets found")

var rootCmd = &cobra.Command{
	Use:           "secretlit",
	Short:         "secretlit - hardcoded secret auditor for Go repositories",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a directory tree for hardcoded secrets",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.New(flagDebug)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		count, err := app.Run(cmd.Context(), app.Options{
			Root:            root,
			ConfigPath:      flagConfig,
			Format:          flagFormat,
			IncludeRules:    flagInclude,
			DisableRules:    flagDisable,
			SkipConfigFiles: flagSkipConfigFiles,
			Out:             os.Stdout,
			Logger:          logger,
		})
		if err != nil {
			return err
		}
		if count > 0 {
			return errFindings
		}
		return nil
	},
}

var orgscanCmd = &cobra.Command{
	Use:   "orgscan",
	Short: "Clone every repository of a GitHub organization and scan it",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagOrg == "" {
			return fmt.Errorf("--org must not be empty")
		}
		logger, err := logging.New(flagDebug)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		count, err := app.RunOrg(cmd.Context(), app.OrgOptions{
			Org:        flagOrg,
			DestDir:    flagDest,
			SkipClone:  flagSkipClone,
			ConfigPath: flagConfig,
			Format:     flagFormat,
			GitHub:     githubclient.New(os.Getenv("GITHUB_TOKEN")),
			Out:        os.Stdout,
			Logger:     logger,
		})
		if err != nil {
			return err
		}
		if count > 0 {
			return errFindings
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tool version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", app.ToolName, app.ToolVersion)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to secretlit.yaml")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "o", "", "Output format (text, json, sarif)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	scanCmd.Flags().StringVar(&flagInclude, "include", "", "Only run these rule IDs (comma-separated)")
	scanCmd.Flags().StringVar(&flagDisable, "disable", "", "Skip these rule IDs (comma-separated)")
	scanCmd.Flags().BoolVar(&flagSkipConfigFiles, "skip-config-files", false, "Skip scanning non-Go configuration files")

	orgscanCmd.Flags().StringVar(&flagOrg, "org", "", "GitHub organization to scan")
	orgscanCmd.Flags().StringVar(&flagDest, "dest", "sources", "Destination directory for repository clones")
	orgscanCmd.Flags().BoolVar(&flagSkipClone, "skip-clone", false, "Assume clones already exist under --dest")

	rootCmd.AddCommand(scanCmd, orgscanCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errFindings) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}
