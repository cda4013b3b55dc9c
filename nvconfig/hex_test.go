package nvconfig

import (
	"bytes"
	"strings"
	"testing"

	"github.com/marcinbor85/gohex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexRoundTrip(t *testing.T) {
	cfg := newTestRecord(t)
	var buf bytes.Buffer
	require.NoError(t, EncodeHex(&buf, cfg, StartAddr))

	// extended linear address record selecting 0x0800xxxx
	assert.Contains(t, strings.ToUpper(buf.String()), ":020000040800F2")

	got, err := DecodeHex(bytes.NewReader(buf.Bytes()), StartAddr)
	require.NoError(t, err)
	assert.Equal(t, *cfg, *got)

	_, err = DecodeHex(bytes.NewReader(buf.Bytes()), StartAddr+Size)
	assert.ErrorIs(t, err, ErrBlankRecord)
}

func TestHexFileToBinary(t *testing.T) {
	cfg := newTestRecord(t)
	var buf bytes.Buffer
	require.NoError(t, EncodeHex(&buf, cfg, StartAddr))

	b, err := HexFileToBinary(bytes.NewReader(buf.Bytes()), FlashBase)
	require.NoError(t, err)
	require.Len(t, b, ConfigOffset+Size)
	assert.Equal(t, bytes.Repeat([]byte{0xff}, ConfigOffset), b[:ConfigOffset])

	rec, err := cfg.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, rec, b[ConfigOffset:])

	_, err = HexFileToBinary(bytes.NewReader(buf.Bytes()), StartAddr+1)
	assert.Error(t, err)
}

func TestDecodeHexInvalid(t *testing.T) {
	_, err := DecodeHex(strings.NewReader(":zz\n"), StartAddr)
	assert.Error(t, err)
}

func TestHexToBinaryAddressOverflow(t *testing.T) {
	mem := gohex.NewMemory()
	require.NoError(t, mem.AddBinary(FlashBase, []byte{1, 2, 3}))
	require.NoError(t, mem.AddBinary(0xFFFFFFF0, make([]byte, 32)))

	_, err := hexToBinary(mem, FlashBase)
	assert.ErrorContains(t, err, "address space")

	mem = gohex.NewMemory()
	require.NoError(t, mem.AddBinary(0xFFFFFFF0, make([]byte, 16)))
	b, err := hexToBinary(mem, 0xFFFFFF00)
	require.NoError(t, err)
	assert.Len(t, b, 0x100)
}
