// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package calib

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type fileReport struct {
	File       string `yaml:"file"`
	Status     string `yaml:"status"`
	Profile    string `yaml:"profile,omitempty"`
	Rows       int    `yaml:"rows"`
	Dropped    int    `yaml:"dropped,omitempty"`
	Outside    int    `yaml:"outside,omitempty"`
	Error      string `yaml:"error,omitempty"`
	Detailed   string `yaml:"detailed,omitempty"`
	Simplified string `yaml:"simplified,omitempty"`
}

type batchReport struct {
	Date       string       `yaml:"date"`
	Calibrated int          `yaml:"calibrated"`
	Skipped    int          `yaml:"skipped"`
	Failed     int          `yaml:"failed"`
	Files      []fileReport `yaml:"files"`
}

// WriteYAML writes the report as a YAML document,
// with a summary of the batch
// and an entry for each file.
func (r Report) WriteYAML(w io.Writer) error {
	doc := batchReport{
		Date:       time.Now().Format(time.RFC3339),
		Calibrated: r.Count(Done),
		Skipped:    r.Count(Skipped),
		Failed:     r.Count(Failed),
		Files:      make([]fileReport, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		fr := fileReport{
			File:       filepath.Base(res.File),
			Status:     res.Status.String(),
			Rows:       res.Rows,
			Dropped:    res.Dropped,
			Outside:    res.Outside,
			Detailed:   res.Detailed,
			Simplified: res.Simplified,
		}
		if !res.Profile.IsZero() {
			fr.Profile = res.Profile.Format(time.DateTime)
		}
		if res.Err != nil {
			fr.Error = res.Err.Error()
		}
		doc.Files = append(doc.Files, fr)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("while writing report: %v", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("while writing report: %v", err)
	}
	return nil
}
