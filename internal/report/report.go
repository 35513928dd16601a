// Package report serializes a RunResult to JSON or CSV. Files are written
// to a temporary path in the destination directory and renamed into place,
// so an interrupted run never leaves a half-written final file.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"lead-rec/internal/leads"
)

var csvHeader = []string{"source_domain", "domain", "url", "category", "copyright", "status", "lead_type"}

// Write picks the format from the file extension.
func Write(path string, result *leads.RunResult) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return WriteJSON(path, result)
	case ".csv":
		return WriteCSV(path, result)
	default:
		return fmt.Errorf("unsupported output extension %q (want .json or .csv)", filepath.Ext(path))
	}
}

// encode flattens the result to the plain seed→leads mapping unless any
// seed failed, in which case the data/errors wrapper is kept.
func encode(result *leads.RunResult) any {
	if len(result.Errors) == 0 {
		return result.Data
	}
	return result
}

// Print renders indented JSON to w; used when no output file is set.
func Print(w io.Writer, result *leads.RunResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(encode(result))
}

func WriteJSON(path string, result *leads.RunResult) error {
	data, err := json.MarshalIndent(encode(result), "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(path, append(data, '\n'))
}

func WriteCSV(path string, result *leads.RunResult) error {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	seedOrder := make([]string, 0, len(result.Data))
	for seed := range result.Data {
		seedOrder = append(seedOrder, seed)
	}
	sort.Strings(seedOrder)

	for _, seed := range seedOrder {
		for _, lead := range result.Data[seed] {
			row := []string{seed, lead.Domain, lead.URL, lead.Category, lead.CopyrightYear, lead.Status, lead.LeadType}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return writeAtomic(path, []byte(b.String()))
}

// ReadJSON loads a previously written JSON result, wrapped or not.
func ReadJSON(path string) (*leads.RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		Data   map[string][]leads.Record `json:"data"`
		Errors map[string]string         `json:"errors"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Data != nil {
		return &leads.RunResult{Data: wrapped.Data, Errors: orEmpty(wrapped.Errors)}, nil
	}

	var plain map[string][]leads.Record
	if err := json.Unmarshal(data, &plain); err != nil {
		return nil, err
	}
	return &leads.RunResult{Data: plain, Errors: map[string]string{}}, nil
}

func orEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".lead-rec-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
