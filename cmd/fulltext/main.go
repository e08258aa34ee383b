// Command fulltext builds, queries, and inspects full-text index segments. It
// consolidates what used to be six near-duplicate binaries (create-index/index,
// datagen/data-gen, query/query-index, dataclean, stats) into one cobra-based CLI.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

func main() {
	root := &cobra.Command{
		Use:   "fulltext",
		Short: "Build, query, and inspect full-text index segments",
	}

	root.PersistentFlags().Bool("verbose", false, "enable debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	}

	root.AddCommand(newBuildCommand())
	root.AddCommand(newQueryCommand())
	root.AddCommand(newStatsCommand())
	root.AddCommand(newGenCommand())
	root.AddCommand(newCleanCommand())

	if err := root.Execute(); err != nil {
		log.WithError(err).Fatal("fulltext command failed")
		os.Exit(1)
	}
}
