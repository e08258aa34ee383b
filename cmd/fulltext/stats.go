package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fulltext/fetcher"
)

// statistics holds aggregate counts computed from a term-postings JSON file, ahead of
// any segment being built from it.
type statistics struct {
	totalSegments          int
	totalDocuments         map[uint32]struct{}
	totalRepeatedDocuments map[uint32]struct{}
	totalTerms             map[string]struct{}
	docFrequencyPerTerm    map[string]int
	documentsPerSegment    []map[uint32]struct{}
	termsPerSegment        []map[string]struct{}
}

func computeStatistics(segments [][]fetcher.TermPosting) statistics {
	stats := statistics{
		totalSegments:         len(segments),
		totalDocuments:        make(map[uint32]struct{}),
		totalRepeatedDocuments: make(map[uint32]struct{}),
		totalTerms:            make(map[string]struct{}),
		docFrequencyPerTerm:   make(map[string]int),
		documentsPerSegment:   make([]map[uint32]struct{}, len(segments)),
		termsPerSegment:       make([]map[string]struct{}, len(segments)),
	}

	for i, segment := range segments {
		stats.documentsPerSegment[i] = make(map[uint32]struct{})
		stats.termsPerSegment[i] = make(map[string]struct{})

		for _, doc := range segment {
			if _, exists := stats.totalDocuments[doc.DocID]; exists {
				stats.totalRepeatedDocuments[doc.DocID] = struct{}{}
				continue
			}
			stats.totalDocuments[doc.DocID] = struct{}{}
			stats.totalTerms[doc.Term] = struct{}{}
			stats.documentsPerSegment[i][doc.DocID] = struct{}{}
			stats.termsPerSegment[i][doc.Term] = struct{}{}
			stats.docFrequencyPerTerm[doc.Term]++
		}
	}

	return stats
}

func newStatsCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print document and term statistics for a term-postings JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(path)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "path or URL to the input JSON file")
	cmd.MarkFlagRequired("path")

	return cmd
}

func runStats(path string) error {
	data, err := fetcher.FetchJSON(path)
	if err != nil {
		return fmt.Errorf("fetching json: %w", err)
	}

	segments, err := fetcher.ParseTermPostings(data)
	if err != nil {
		return fmt.Errorf("parsing json: %w", err)
	}

	stats := computeStatistics(segments)
	printStatistics(stats)
	return nil
}

func printStatistics(stats statistics) {
	fmt.Printf("\n+============== Stats ===============\n\n")
	fmt.Printf("Total Segments: %d\n\n", stats.totalSegments)

	fmt.Printf("Segment\tDistinct Docs\tDistinct Terms\n")
	fmt.Printf("-------\t-------------\t--------------\n")
	for i := 0; i < stats.totalSegments; i++ {
		fmt.Printf("%d\t%d\t\t%d\n", i, len(stats.documentsPerSegment[i]), len(stats.termsPerSegment[i]))
	}

	fmt.Printf("\nTotal Documents: %d\n", len(stats.totalDocuments))
	fmt.Printf("Total Repeated Documents: %d\n", len(stats.totalRepeatedDocuments))
	fmt.Printf("Total Terms: %d\n\n", len(stats.totalTerms))

	fmt.Printf("%-15s\t%-15s\n", "Term", "Doc Frequency")
	fmt.Printf("-------------\t-------------\n")
	for term, freq := range stats.docFrequencyPerTerm {
		fmt.Printf("%-15s\t%-15d\n", term, freq)
	}
}
