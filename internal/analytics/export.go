package analytics

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
)

var csvHeader = []string{"date", "mood"}

// WriteCSV writes a date,mood header followed by one row per entry, oldest
// first.
func WriteCSV(w io.Writer, entries []*mood.MoodEntry) error {
	sorted := make([]*mood.MoodEntry, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			sorted = append(sorted, e)
		}
	}
	SortByDate(sorted)

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range sorted {
		if err := cw.Write([]string{mood.FormatDay(e.Date), string(e.Mood)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ExportCSV(entries []*mood.MoodEntry) string {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer do not fail.
	_ = WriteCSV(&buf, entries)
	return buf.String()
}

// ParseCSV reads rows written by WriteCSV back into date and mood pairs.
func ParseCSV(r io.Reader) ([]*mood.MoodEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv: missing header")
	}
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(header[0], csvHeader[0]) || !strings.EqualFold(header[1], csvHeader[1]) {
		return nil, fmt.Errorf("csv: unexpected header %v", header)
	}

	out := []*mood.MoodEntry{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		day, err := mood.ParseDay(rec[0])
		if err != nil {
			return nil, err
		}
		m, err := mood.ParseMoodType(rec[1])
		if err != nil {
			return nil, err
		}
		out = append(out, &mood.MoodEntry{Date: day, Mood: m})
	}
	return out, nil
}
