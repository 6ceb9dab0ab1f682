package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte(`{"weights":[0.125,-0.5,1.75]},`), 200)

	for _, typ := range []Type{None, LZ4, ZSTD} {
		t.Run(typ.String(), func(t *testing.T) {
			enc, err := Compress(payload, typ)
			require.NoError(t, err)
			assert.Equal(t, typ, Detect(enc))
			if typ != None {
				assert.Less(t, len(enc), len(payload))
			}

			dec, err := Decompress(enc)
			require.NoError(t, err)
			assert.Equal(t, payload, dec)
		})
	}
}

func TestParseType(t *testing.T) {
	tests := map[string]Type{"": None, "none": None, "LZ4": LZ4, "zstd": ZSTD, "zst": ZSTD}
	for in, want := range tests {
		got, err := ParseType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseType("gzip")
	assert.Error(t, err)

	assert.Equal(t, ".zst", ZSTD.Extension())
	assert.Equal(t, ".lz4", LZ4.Extension())
	assert.Equal(t, "", None.Extension())
}

func TestCompress_Unknown(t *testing.T) {
	_, err := Compress([]byte("x"), Type(9))
	assert.Error(t, err)
}
