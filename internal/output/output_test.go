package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhunt-scraper/internal/domain"
)

func sample() []domain.JobRecord {
	return []domain.JobRecord{
		{
			Title:        "Senior Rust Engineer",
			Company:      "Acme Corp",
			Location:     "Remote",
			Salary:       "$120,000",
			Remote:       domain.RemoteYes,
			Technologies: []string{"Rust", "Docker"},
			URL:          "https://example.com/jobs/1",
		},
		{Title: "Rust Developer", Remote: domain.RemoteNo, Technologies: []string{}},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", JSON, false},
		{"json", JSON, false},
		{" CSV ", CSV, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, CSV, FormatFor("out/jobs.CSV", JSON))
	assert.Equal(t, JSON, FormatFor("jobs.json", CSV))
	assert.Equal(t, CSV, FormatFor("jobs.txt", CSV))
}

func TestEncodeCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, CSV, sample()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "Rust, Docker", rows[1][7])
	assert.Equal(t, "Yes", rows[1][6])
	assert.Equal(t, "https://example.com/jobs/1", rows[1][9])
	assert.Equal(t, "", rows[2][7])
}

func TestEncodeJSONKeepsFieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, JSON, sample()))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Len(t, got[0], len(Columns))
	for _, c := range Columns {
		assert.Contains(t, got[0], c)
	}
	assert.Equal(t, []any{}, got[1]["technologies"])
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "jobs.json")

	require.NoError(t, Write(path, JSON, sample()))
	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []domain.JobRecord
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, sample(), got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestWriteRefusesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.csv")
	assert.ErrorIs(t, Write(path, CSV, nil), ErrEmpty)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
