package main

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"fulltext/storage"
)

func logFields(segmentID int, path string, segment *storage.Segment) logrus.Fields {
	return logrus.Fields{
		"segment_id": segmentID,
		"path":       path,
		"docs":       segment.TotalDocs(),
		"terms":      len(segment.Terms),
	}
}

// loadSegments reads every *.bin file in dir into a Segment.
func loadSegments(dir string) ([]*storage.Segment, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var segments []*storage.Segment
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".bin" {
			continue
		}
		path := filepath.Join(dir, file.Name())
		segment, err := loadSegmentFile(path)
		if err != nil {
			log.WithError(err).WithField("path", path).Warn("skipping unreadable segment file")
			continue
		}
		segments = append(segments, segment)
	}
	return segments, nil
}

func loadSegmentFile(path string) (*storage.Segment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	segment := storage.NewSegment()
	if err := segment.Deserialize(file); err != nil {
		return nil, err
	}
	return segment, nil
}
