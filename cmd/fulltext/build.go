package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"fulltext/fetcher"
	"fulltext/storage"
)

const (
	defaultSegmentDir = "segment-data"
)

func newBuildCommand() *cobra.Command {
	var (
		path string
		dir  string
		zstd bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build segment files from a term-postings JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(path, dir, zstd)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "path or URL to the input JSON file")
	cmd.Flags().StringVar(&dir, "dir", defaultSegmentDir, "directory to store segment files")
	cmd.Flags().BoolVar(&zstd, "zstd", true, "compress segment files with zstd")
	cmd.MarkFlagRequired("path")

	return cmd
}

func runBuild(path, dir string, useZstd bool) error {
	log.WithField("path", path).Info("reading term postings")

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating segment directory: %w", err)
	}

	data, err := fetcher.FetchJSON(path)
	if err != nil {
		return fmt.Errorf("fetching json: %w", err)
	}

	jsonSegments, err := fetcher.ParseTermPostings(data)
	if err != nil {
		return fmt.Errorf("parsing json: %w", err)
	}

	log.WithField("segments", len(jsonSegments)).Info("building segments")

	codec := storage.CodecNone
	if useZstd {
		codec = storage.CodecZstd
	}

	for segmentID, postings := range jsonSegments {
		segment := storage.NewSegment()
		if err := segment.BulkIndex(postings); err != nil {
			return fmt.Errorf("indexing segment %d: %w", segmentID, err)
		}
		if err := segment.Seal(); err != nil {
			return fmt.Errorf("sealing segment %d: %w", segmentID, err)
		}

		segmentPath := filepath.Join(dir, fmt.Sprintf("segment_%d.bin", segmentID))
		if err := writeSegmentFile(segment, segmentPath, codec); err != nil {
			return fmt.Errorf("writing segment %d: %w", segmentID, err)
		}
		log.WithFields(logFields(segmentID, segmentPath, segment)).Debug("segment written")
	}

	log.Info("segments built successfully")
	return nil
}

func writeSegmentFile(segment *storage.Segment, path string, codec storage.Codec) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return segment.Serialize(file, codec)
}
