package dataset

import "fmt"

// artifactColumns are index columns left behind by the upstream exporter.
// They carry no information and are removed when present.
var artifactColumns = []string{"Unnamed: 0"}

// Row is one raw record, cells keyed by column name.
type Row map[string]string

// Table is a raw tabular dataset as handed over by a loader: a named header
// plus string-valued rows. The normalizer turns tables into typed records.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// MissingColumnError reports a column the pipeline cannot run without.
type MissingColumnError struct {
	Dataset string
	Column  string
}

func (e MissingColumnError) Error() string {
	return fmt.Sprintf("dataset %s: required column %q missing", e.Dataset, e.Column)
}

// Require returns a MissingColumnError for the first named column absent from
// the table header.
func (t Table) Require(cols ...string) error {
	present := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		present[c] = true
	}
	for _, c := range cols {
		if !present[c] {
			return MissingColumnError{Dataset: t.Name, Column: c}
		}
	}
	return nil
}

// DropArtifacts removes exporter index columns from the header and rows,
// tolerating their absence.
func (t *Table) DropArtifacts() {
	for _, artifact := range artifactColumns {
		kept := t.Columns[:0]
		for _, c := range t.Columns {
			if c != artifact {
				kept = append(kept, c)
			}
		}
		t.Columns = kept
		for _, r := range t.Rows {
			delete(r, artifact)
		}
	}
}
