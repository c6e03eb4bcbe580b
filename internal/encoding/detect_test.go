package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/encoding"
)

const header = "Tenant;Address;Monthly Rent\nJosé Núñez;125 Grand St, Apt 4B;2.450,00\n"

func decode(t *testing.T, input []byte) (string, encoding.Charset) {
	t.Helper()

	r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), charset
}

func TestNewUTF8Reader(t *testing.T) {
	win1252, err := charmap.Windows1252.NewEncoder().Bytes([]byte(header))
	require.NoError(t, err)

	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(header))
	require.NoError(t, err)

	tests := []struct {
		name        string
		input       []byte
		wantCharset encoding.Charset
	}{
		{name: "UTF8", input: []byte(header), wantCharset: encoding.UTF8},
		{name: "UTF8BOM", input: append([]byte{0xEF, 0xBB, 0xBF}, header...), wantCharset: encoding.UTF8BOM},
		{name: "UTF16LE", input: utf16le, wantCharset: encoding.UTF16LE},
		{name: "Windows1252", input: win1252},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, charset := decode(t, tt.input)

			assert.Equal(t, header, got)

			if tt.wantCharset != "" {
				assert.Equal(t, tt.wantCharset, charset)
			}
		})
	}
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	got, charset := decode(t, nil)

	assert.Empty(t, got)
	assert.Equal(t, encoding.UTF8, charset)
}

func TestNewUTF8Reader_LargerThanSniffWindow(t *testing.T) {
	big := bytes.Repeat([]byte("unit;rent\n4B;2500\n"), 1000)

	got, _ := decode(t, big)
	assert.Equal(t, string(big), got)
}
