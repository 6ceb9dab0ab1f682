package dataset

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/glassgen/blobstore"
	"github.com/hupe1980/glassgen/internal/compress"
	"github.com/hupe1980/glassgen/normalize"
	"github.com/hupe1980/glassgen/oxide"
	"github.com/hupe1980/glassgen/property"
)

const rhoCSV = `SiO2,Na2O,CaO,rho
0.75,0.15,0.10,2480
0.70,0.20,0.10,2510
0.60,0.25,0.15,2600
`

func TestParse(t *testing.T) {
	d, err := Parse(strings.NewReader(rhoCSV), "rho.csv", Options{})
	require.NoError(t, err)

	assert.Equal(t, "rho.csv", d.Name)
	assert.Equal(t, "rho", d.Label)
	assert.Equal(t, []string{"SiO2", "Na2O", "CaO"}, d.Oxides.Names())
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []float64{2480, 2510, 2600}, d.Y)
	assert.Equal(t, []float64{0.70, 0.20, 0.10}, d.X.Row(1))
	assert.Equal(t, []float64{0.75, 0.25, 0.15}, d.Upper())

	b := d.Bounds()
	assert.Equal(t, "rho.csv", b.Name)
	assert.NoError(t, b.Validate())
}

func TestParseLabelAndIgnore(t *testing.T) {
	src := "id;Tg;SiO2;B2O3\n1;800;0.8;0.2\n2;750;0.6;0.4\n"
	d, err := Parse(strings.NewReader(src), "tg", Options{Label: "Tg", Ignore: []string{"id"}, Comma: ';'})
	require.NoError(t, err)
	assert.Equal(t, []string{"SiO2", "B2O3"}, d.Oxides.Names())
	assert.Equal(t, []float64{800, 750}, d.Y)
	assert.Equal(t, []float64{0.6, 0.4}, d.X.Row(1))
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader(""), "empty", Options{})
	assert.Error(t, err)

	_, err = Parse(strings.NewReader(rhoCSV), "rho", Options{Label: "E"})
	assert.Error(t, err)

	_, err = Parse(strings.NewReader("SiO2,SiO2,y\n0.5,0.5,1\n"), "dup", Options{})
	assert.ErrorIs(t, err, oxide.ErrDuplicateOxide)

	_, err = Parse(strings.NewReader("SiO2,y\nabc,1\n"), "bad", Options{})
	assert.ErrorContains(t, err, "line 2")

	_, err = Parse(strings.NewReader("SiO2,Na2O,y\n0.5,0.5\n"), "short", Options{})
	assert.Error(t, err)
}

func TestLoadFromStore(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	packed, err := compress.Compress([]byte(rhoCSV), compress.ZSTD)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "data/rho.csv.zst", packed))

	d, err := Load(ctx, store, "data/rho.csv.zst", Options{Label: "rho"})
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())

	_, err = Load(ctx, store, "data/missing.csv", Options{})
	assert.Equal(t, blobstore.ErrNotFound, err)
}

func TestMolarMassAndTrainingLabels(t *testing.T) {
	d, err := Parse(strings.NewReader(rhoCSV), "rho", Options{})
	require.NoError(t, err)

	mm, err := d.MolarMass(oxide.DefaultMolarMasses)
	require.NoError(t, err)
	want := 0.75*60.0843 + 0.15*61.9789 + 0.10*56.0774
	assert.InDelta(t, want, mm[0], 1e-9)

	labels, err := d.TrainingLabels(property.MolarVolume{}, oxide.DefaultMolarMasses)
	require.NoError(t, err)
	assert.InDelta(t, want/2480, labels[0], 1e-12)
	assert.Equal(t, 2480.0, d.Y[0], "Y is not modified")

	_, err = d.MolarMass(oxide.MolarMassTable{"SiO2": 60})
	assert.ErrorIs(t, err, oxide.ErrUnknownOxide)
}

func TestFitNormalizer(t *testing.T) {
	d, err := Parse(strings.NewReader(rhoCSV), "rho", Options{})
	require.NoError(t, err)

	n, err := d.FitNormalizer(normalize.KindMinMax)
	require.NoError(t, err)
	assert.Equal(t, normalize.Params{Kind: normalize.KindMinMax, A: 2480, B: 2600}, n.Params())

	flat, err := Parse(strings.NewReader("SiO2,y\n1,5\n1,5\n"), "flat", Options{})
	require.NoError(t, err)
	_, err = flat.FitNormalizer(normalize.KindStandard)
	assert.ErrorIs(t, err, normalize.ErrDegenerate)
}

const disso = `oxide,G,note
SiO2,443,x
Na2O,85,y
CaO,134,z
`

func TestCoefficients(t *testing.T) {
	c, err := ParseCoefficients(strings.NewReader(disso), "disso.csv", "G")
	require.NoError(t, err)
	assert.Equal(t, []string{"SiO2", "Na2O", "CaO"}, c.Oxides())

	v, ok := c.Value("Na2O")
	assert.True(t, ok)
	assert.Equal(t, 85.0, v)

	got, err := c.Aligned(oxide.MustSet("CaO", "SiO2"))
	require.NoError(t, err)
	assert.Equal(t, []float64{134, 443}, got)

	_, err = c.Aligned(oxide.MustSet("SiO2", "B2O3"))
	assert.ErrorIs(t, err, oxide.ErrUnknownOxide)

	var _ property.CoefficientTable = c
}

func TestCoefficientsErrors(t *testing.T) {
	_, err := ParseCoefficients(strings.NewReader(disso), "disso", "H")
	assert.Error(t, err)

	_, err = ParseCoefficients(strings.NewReader(disso), "disso", "oxide")
	assert.Error(t, err, "identifier column is not a coefficient column")

	_, err = ParseCoefficients(strings.NewReader("oxide,G\nSiO2,1\nSiO2,2\n"), "dup", "G")
	assert.Error(t, err)

	_, err = LoadCoefficients(context.Background(), blobstore.NewMemoryStore(), "none.csv", "G")
	assert.Equal(t, blobstore.ErrNotFound, err)
}
