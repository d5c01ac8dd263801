// Package export writes a completed job's results to a compressed bundle so
// a briefing can be shared or archived outside the dashboard.
package export

import (
	"archive/tar"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/briefdeck/briefdeck/internal/api"
	"github.com/briefdeck/briefdeck/internal/rawval"
)

// BundleFilename returns the conventional bundle name for a job.
func BundleFilename(jobID string) string {
	return fmt.Sprintf("briefing-%s.tar.gz", jobID)
}

// WriteBundle writes job as a gzipped tar archive: the final briefing (or
// the coordinator output when no briefing exists) as briefing.md, the job
// record as job.json, and each remaining result under results/: .json for
// structured payloads, .txt for text.
func WriteBundle(w io.Writer, job *api.Job) error {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)
	now := time.Now()

	briefing := job.Results[api.AgentFinalBriefing]
	if briefing == nil {
		briefing = job.Results[api.AgentCoordinator]
	}
	if briefing != nil {
		if err := writeEntry(tw, now, "briefing.md", []byte(rawval.Resolve(briefing).String())); err != nil {
			return err
		}
	}

	jobJSON, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding job record: %w", err)
	}
	if err := writeEntry(tw, now, "job.json", jobJSON); err != nil {
		return err
	}

	for _, key := range resultOrder(job.Results) {
		raw := job.Results[key]
		if raw == nil {
			continue
		}
		v := rawval.Resolve(raw)
		name := "results/" + key + ".txt"
		if v.Kind == rawval.Object || v.Kind == rawval.Array {
			name = "results/" + key + ".json"
		}
		if err := writeEntry(tw, now, name, []byte(v.String())); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("finalizing compression: %w", err)
	}
	return nil
}

// resultOrder lists the result keys to bundle: recognized keys in display
// order, then any unrecognized keys sorted, with the briefing excluded since
// it already sits at the bundle root.
func resultOrder(results map[string]any) []string {
	known := make(map[string]bool, len(api.AgentKeys))
	var order []string
	for _, key := range api.AgentKeys {
		known[key] = true
		if _, ok := results[key]; ok && key != api.AgentFinalBriefing {
			order = append(order, key)
		}
	}
	var extra []string
	for key := range results {
		if !known[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	return append(order, extra...)
}

func writeEntry(tw *tar.Writer, modTime time.Time, name string, data []byte) error {
	hdr := &tar.Header{
		Name:    name,
		Mode:    0o644,
		Size:    int64(len(data)),
		ModTime: modTime,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("writing %s header: %w", name, err)
	}
	if _, err := tw.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
