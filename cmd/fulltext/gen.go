package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"fulltext/fetcher"
)

var vocabulary = []string{
	"jedi", "force", "skywalker", "sith", "lightsaber", "empire", "rebellion", "droid",
	"blaster", "starship", "yoda", "clone", "trooper", "battle", "padawan", "hologram",
	"bounty", "hunter", "coruscant", "tatooine", "deathstar", "vader", "han", "chewbacca",
	"leia", "luke", "anakin", "grievous", "obiwan", "qui-gon", "naboo", "geonosis",
	"kamino", "mustafar", "dagobah", "endor", "hoth", "alderaan", "kashyyyk", "lando",
	"carbonite", "lightspeed", "hyperdrive", "holocron", "starfighter", "speeder", "cantina",
	"protocol", "gungan", "wookiee",
}

func newGenCommand() *cobra.Command {
	var (
		out               string
		numSegments       int
		numDocsPerSegment int
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a random term-postings JSON file for testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(out, numSegments, numDocsPerSegment)
		},
	}

	cmd.Flags().StringVar(&out, "out", "output.json", "output JSON file path")
	cmd.Flags().IntVar(&numSegments, "segments", 7, "number of segments to generate")
	cmd.Flags().IntVar(&numDocsPerSegment, "docs-per-segment", 100_000, "documents per segment")

	return cmd
}

func runGen(out string, numSegments, numDocsPerSegment int) error {
	root := fetcher.Root{Segments: make([][]fetcher.TermPosting, numSegments)}
	for i := 0; i < numSegments; i++ {
		root.Segments[i] = generateSegment(numDocsPerSegment)
	}

	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(root); err != nil {
		return fmt.Errorf("writing json: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"path":     out,
		"segments": numSegments,
		"docs":     numSegments * numDocsPerSegment,
	}).Info("generated term postings")
	return nil
}

func generateSegment(numDocs int) []fetcher.TermPosting {
	segment := make([]fetcher.TermPosting, 0, numDocs)
	for docID := uint32(0); int(docID) < numDocs; docID++ {
		segment = append(segment, fetcher.TermPosting{
			Term:          vocabulary[rand.Intn(len(vocabulary))],
			DocID:         docID,
			TermFrequency: rand.Float32(),
		})
	}
	return segment
}
