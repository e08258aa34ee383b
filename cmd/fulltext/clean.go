package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fulltext/fetcher"
)

func newCleanCommand() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Drop duplicate document IDs across segments in a term-postings JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(input, output)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "path or URL to the input JSON file")
	cmd.Flags().StringVar(&output, "output", "", "path to the cleaned output JSON file")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")

	return cmd
}

func runClean(input, output string) error {
	data, err := fetcher.FetchJSON(input)
	if err != nil {
		return fmt.Errorf("fetching json: %w", err)
	}

	segments, err := fetcher.ParseTermPostings(data)
	if err != nil {
		return fmt.Errorf("parsing json: %w", err)
	}

	cleaned := dedupeSegments(segments)

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(fetcher.Root{Segments: cleaned}); err != nil {
		return fmt.Errorf("writing json: %w", err)
	}

	log.WithField("path", output).Info("cleaned term postings written")
	return nil
}

// dedupeSegments drops postings for a DocId once it has already appeared, in an earlier
// segment or earlier in the same segment.
func dedupeSegments(segments [][]fetcher.TermPosting) [][]fetcher.TermPosting {
	seen := make(map[uint32]struct{})
	cleaned := make([][]fetcher.TermPosting, len(segments))

	for i, segment := range segments {
		unique := make([]fetcher.TermPosting, 0, len(segment))
		for _, doc := range segment {
			if _, exists := seen[doc.DocID]; exists {
				continue
			}
			seen[doc.DocID] = struct{}{}
			unique = append(unique, doc)
		}
		cleaned[i] = unique
	}

	return cleaned
}
