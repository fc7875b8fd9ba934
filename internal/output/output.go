// Package output serialises the final record set as JSON or CSV.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"jobhunt-scraper/internal/domain"
)

type Format string

const (
	JSON Format = "json"
	CSV  Format = "csv"
)

// ErrEmpty is returned instead of writing a file with no records in it.
var ErrEmpty = errors.New("no records to write")

// Columns is the fixed field order of every output.
var Columns = []string{
	"title", "company", "location", "salary", "job_type", "experience_level",
	"remote", "technologies", "description", "url", "date_posted",
}

// ParseFormat accepts "json" or "csv" in any case. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", JSON:
		return JSON, nil
	case CSV:
		return CSV, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json or csv)", s)
	}
}

// FormatFor guesses the format from a file extension, falling back to def.
func FormatFor(path string, def Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSV
	case ".json":
		return JSON
	}
	return def
}

// Encode writes records to w in format f.
func Encode(w io.Writer, f Format, records []domain.JobRecord) error {
	switch f {
	case CSV:
		return encodeCSV(w, records)
	case JSON, "":
		return encodeJSON(w, records)
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

// Write replaces path with the encoded records. The file is written to a
// temp sibling under a lock on path+".lock" and renamed into place, so a
// reader never sees a partial file.
func Write(path string, f Format, records []domain.JobRecord) error {
	if len(records) == 0 {
		return ErrEmpty
	}

	var buf bytes.Buffer
	if err := Encode(&buf, f, records); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer func() { _ = lock.Unlock() }()

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func encodeJSON(w io.Writer, records []domain.JobRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if records == nil {
		records = []domain.JobRecord{}
	}
	return enc.Encode(records)
}

func encodeCSV(w io.Writer, records []domain.JobRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, j := range records {
		if err := cw.Write(row(j)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func row(j domain.JobRecord) []string {
	return []string{
		j.Title,
		j.Company,
		j.Location,
		j.Salary,
		j.JobType,
		j.ExperienceLevel,
		string(j.Remote),
		strings.Join(j.Technologies, ", "),
		j.Description,
		j.URL,
		j.DatePosted,
	}
}
