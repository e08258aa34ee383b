// Package fetcher loads term-posting documents from a local JSON file or an http(s) URL
// and parses them into the segments a Segment is built from.
package fetcher

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// TermPosting is a single (term, document, frequency) observation, the unit BulkIndex
// consumes.
type TermPosting struct {
	Term          string  `json:"term"`
	DocID         uint32  `json:"doc_id"`
	TermFrequency float32 `json:"term_frequency"`
}

// Root is the top-level structure of the input JSON file: a list of segments, each a
// list of term postings destined for one Segment.
type Root struct {
	Segments [][]TermPosting `json:"segments"`
}

// FetchJSON fetches JSON data from either an http(s) URL or a local file path.
func FetchJSON(path string) ([]byte, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		response, err := http.Get(path)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch json: %w", err)
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("non-ok HTTP response: %s", response.Status)
		}

		data, err := io.ReadAll(response.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read local file: %w", err)
	}
	return data, nil
}

// ParseTermPostings parses the JSON data into a slice of segments, each a slice of
// TermPosting.
func ParseTermPostings(data []byte) ([][]TermPosting, error) {
	var root Root
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}
	return root.Segments, nil
}
