package batch

import (
	"encoding/json"
	"os"
)

// Manifest describes an exported frame sequence.
type Manifest struct {
	Clip     string          `json:"clip"`
	ReportID string          `json:"report_id,omitempty"`
	FPS      float64         `json:"fps"`
	Frames   []ManifestEntry `json:"frames"`
}

// ManifestEntry represents one encoded frame.
type ManifestEntry struct {
	Index int     `json:"index"`
	Time  float64 `json:"time"`
	Image string  `json:"image"`
}

// WriteManifest writes the manifest of successful frames to path.
func WriteManifest(path string, m Manifest, results []Result) error {
	m.Frames = make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		m.Frames = append(m.Frames, ManifestEntry{Index: r.Index, Time: r.Time, Image: r.Image})
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
