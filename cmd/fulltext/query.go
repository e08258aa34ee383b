package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fulltext/engine"
)

func newQueryCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "query [terms...]",
		Short: "Run a multi-term query against segment files in a directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(dir, args)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", defaultSegmentDir, "directory to load segment files from")
	return cmd
}

func runQuery(dir string, terms []string) error {
	segments, err := loadSegments(dir)
	if err != nil {
		return fmt.Errorf("loading segments: %w", err)
	}
	if len(segments) == 0 {
		return fmt.Errorf("no segments found in %s", dir)
	}

	var totalDocs uint32
	for _, segment := range segments {
		totalDocs += segment.TotalDocs()
	}

	queryEngine, err := engine.NewQueryEngine(segments, totalDocs)
	if err != nil {
		return fmt.Errorf("initializing query engine: %w", err)
	}

	log.WithField("terms", terms).Info("running query")

	results, err := queryEngine.MultiTermQuery(terms, func(d1, d2 engine.ScoredDocument) bool {
		return d1.Score > d2.Score
	})
	if err != nil {
		return fmt.Errorf("executing query: %w", err)
	}

	printResults(results)
	return nil
}

func printResults(results []engine.ScoredDocument) {
	fmt.Printf("Scored documents: %d\n", len(results))
	fmt.Println(strings.Repeat("-", 22))
	fmt.Printf("| %-8s | %-8s |\n", "DocID", "Score")
	fmt.Println(strings.Repeat("-", 22))
	for _, doc := range results {
		fmt.Printf("| %-8d | %8.2f |\n", doc.DocID, doc.Score)
	}
	fmt.Println(strings.Repeat("-", 22))
}
