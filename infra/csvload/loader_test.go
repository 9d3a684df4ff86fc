package csvload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lastmile-sim/courierenv/infra/logger"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "Unnamed: 0,courier_id,order_ids\n0,c1,\"[1, 2]\"\n1,c2,[]\n")
	l := NewLoader(logger.NopLogger{})
	tbl, err := l.Load(path, "courier_waves")
	require.NoError(t, err)
	require.Equal(t, "courier_waves", tbl.Name)
	require.Equal(t, []string{"Unnamed: 0", "courier_id", "order_ids"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	require.Equal(t, "c1", tbl.Rows[0]["courier_id"])
	require.Equal(t, "[1, 2]", tbl.Rows[0]["order_ids"])
}

func TestLoadSkipsRaggedRows(t *testing.T) {
	path := writeFile(t, "a,b\n1,2\n3\n4,5\n")
	l := NewLoader(logger.NopLogger{})
	tbl, err := l.Load(path, "x")
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
}

func TestLoadMissingFile(t *testing.T) {
	l := NewLoader(nil)
	_, err := l.Load(filepath.Join(t.TempDir(), "absent.csv"), "waybills")
	require.Error(t, err)
	require.Contains(t, err.Error(), "waybills")
}
