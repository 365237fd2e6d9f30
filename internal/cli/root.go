package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reposh",
	Short: "Browse a GitHub repository from a shell",
	Long: `reposh mirrors a GitHub repository as a read-only virtual filesystem and
lets you walk it with familiar commands: ls, cd, cat, open, bash and lua.

The tree is listed in the background while you type; file contents are
fetched on first use. Without a repository (or with --offline) a small
built-in tree is used instead.

Repository selection, highest priority first:
  --repo owner/name, REPOSH_REPO, reposh.yaml

A GITHUB_TOKEN from the environment or .env is sent with every request.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Remote repository unavailable
  13 - Script file could not be read`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runShell,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	addSessionFlags(rootCmd)
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
