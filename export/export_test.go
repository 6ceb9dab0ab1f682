package export

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/glassgen/blobstore"
	"github.com/hupe1980/glassgen/internal/compress"
	"github.com/hupe1980/glassgen/screen"
)

func sampleResult() *screen.Result {
	return &screen.Result{
		Oxides:     []string{"SiO2", "Na2O"},
		Properties: []string{"E", "Tg"},
		Records: []screen.Record{
			{Row: 3, Composition: []float64{0.75, 0.25}, Values: []float64{72.5, 800}},
			{Row: 9, Composition: []float64{0.6, 0.4}, Values: []float64{65, 750.25}},
		},
		Total: 10,
	}
}

func TestFromResult(t *testing.T) {
	tbl, err := FromResult(sampleResult(), []Column{{Name: "Tg", Offset: KelvinToCelsius}, {Name: "E"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"SiO2", "Na2O", "Tg", "E"}, tbl.Header())
	require.Len(t, tbl.Rows, 2)
	assert.InDelta(t, 800-273.15, tbl.Rows[0][2], 1e-9)
	assert.Equal(t, 72.5, tbl.Rows[0][3])
	assert.Equal(t, []float64{0.6, 0.4}, tbl.Rows[1][:2])
}

func TestFromResultDefaultsAndErrors(t *testing.T) {
	tbl, err := FromResult(sampleResult(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"E", "Tg"}, tbl.Properties)

	_, err = FromResult(sampleResult(), []Column{{Name: "rho"}})
	assert.Error(t, err)
}

func TestCSVWriter(t *testing.T) {
	ctx := context.Background()
	tbl, err := FromResult(sampleResult(), nil)
	require.NoError(t, err)

	store := blobstore.NewMemoryStore()
	w := NewCSVWriter(store, "out/result.csv")
	require.NoError(t, w.Write(ctx, tbl))

	data, err := blobstore.ReadAll(ctx, store, "out/result.csv")
	require.NoError(t, err)
	assert.Equal(t, "SiO2,Na2O,E,Tg\n0.75,0.25,72.5,800\n0.6,0.4,65,750.25\n", string(data))
}

func TestCSVWriterCompressed(t *testing.T) {
	ctx := context.Background()
	tbl, err := FromResult(sampleResult(), nil)
	require.NoError(t, err)

	store := blobstore.NewMemoryStore()
	w := NewCSVWriter(store, "result.csv.zst", WithCompression(compress.ZSTD), WithPrecision(3))
	assert.Equal(t, "result.csv.zst", w.Name())
	require.NoError(t, w.Write(ctx, tbl))

	data, err := blobstore.ReadAll(ctx, store, "result.csv.zst")
	require.NoError(t, err)
	assert.Equal(t, compress.ZSTD, compress.Detect(data))

	raw, err := compress.Decompress(data)
	require.NoError(t, err)
	assert.Equal(t, "SiO2,Na2O,E,Tg\n0.75,0.25,72.5,800\n0.6,0.4,65,750\n", string(raw))
}

func TestCSVWriterRejectsRaggedRows(t *testing.T) {
	tbl := &Table{Oxides: []string{"SiO2"}, Properties: []string{"E"}, Rows: [][]float64{{1}}}
	_, err := NewCSVWriter(blobstore.NewMemoryStore(), "x.csv").Encode(tbl)
	assert.Error(t, err)
}

func TestSQLiteWriter(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "glass.db")

	w, err := OpenSQLite(path, "screened")
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	tbl, err := FromResult(sampleResult(), []Column{{Name: "Tg", Offset: KelvinToCelsius}})
	require.NoError(t, err)
	require.NoError(t, w.Write(ctx, tbl))
	// a second write replaces the table
	require.NoError(t, w.Write(ctx, tbl))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "screened"`).Scan(&count))
	assert.Equal(t, 2, count)

	var sio2, tg float64
	require.NoError(t, db.QueryRowContext(ctx, `SELECT "SiO2", "Tg" FROM "screened" WHERE row = 1`).Scan(&sio2, &tg))
	assert.Equal(t, 0.6, sio2)
	assert.InDelta(t, 750.25-273.15, tg, 1e-9)
}

func TestSQLiteWriterSharedHandle(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer func() { _ = db.Close() }()

	w := NewSQLiteWriter(db, `odd "name"`)
	tbl := &Table{Oxides: []string{"SiO2"}, Properties: []string{"E"}, Rows: [][]float64{{1, 70}}}
	require.NoError(t, w.Write(context.Background(), tbl))
	require.NoError(t, w.Close(), "shared handle is left open")

	var e float64
	require.NoError(t, db.QueryRow(`SELECT "E" FROM "odd ""name"""`).Scan(&e))
	assert.Equal(t, 70.0, e)
}
