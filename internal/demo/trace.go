package demo

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"tickshare/internal/counter"
)

var traceHeader = []string{"seq", "timestamp", "source", "value"}

// WriteTrace writes history to path as CSV, replacing any existing file.
func WriteTrace(path string, history []counter.Increment) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = writeTrace(f, history); err != nil {
		f.Close()
		return fmt.Errorf("cannot write trace %s: %w", path, err)
	}
	return f.Close()
}

func writeTrace(w io.Writer, history []counter.Increment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(traceHeader); err != nil {
		return err
	}
	for _, inc := range history {
		rec := []string{
			strconv.Itoa(inc.Seq),
			inc.Time.Format(time.RFC3339Nano),
			inc.Source,
			strconv.Itoa(inc.Value),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
