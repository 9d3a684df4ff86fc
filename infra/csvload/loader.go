package csvload

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/lastmile-sim/courierenv/core/dataset"
	"github.com/lastmile-sim/courierenv/infra/logger"
)

// Loader reads the raw CSV exports into tables for the normalizer. The first
// record is the header; every cell is kept as text, typing is the
// normalizer's job.
type Loader struct {
	log logger.Logger
}

func NewLoader(log logger.Logger) *Loader {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Loader{log: log}
}

// Load reads one CSV file into a named table.
func (l *Loader) Load(path, name string) (dataset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("load %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// List-valued cells contain commas; they are quoted in the exports, but
	// keep the reader lenient about per-record field counts so one ragged
	// row surfaces as a row error, not a hard stop.
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return dataset.Table{}, fmt.Errorf("load %s: read header: %w", name, err)
	}
	t := dataset.Table{Name: name, Columns: header}
	ragged := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return dataset.Table{}, fmt.Errorf("load %s: %w", name, err)
		}
		if len(rec) != len(header) {
			ragged++
			continue
		}
		row := make(dataset.Row, len(header))
		for i, col := range header {
			row[col] = rec[i]
		}
		t.Rows = append(t.Rows, row)
	}
	if ragged > 0 {
		l.log.Warnf("%s: skipped %d rows not matching the header width", name, ragged)
	}
	l.log.Infof("loaded %d rows from %s", len(t.Rows), path)
	return t, nil
}
