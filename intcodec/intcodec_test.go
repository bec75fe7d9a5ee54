package intcodec

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 255, -255, 1 << 40, -(1 << 40), 1<<62 - 1, -(1<<62 - 1)}
	for _, x := range cases {
		b := Bytes(x)
		assert.Equal(t, x, Decode(b[:]), "round trip for %d", x)
	}
}

func TestNegativeZero(t *testing.T) {
	b := [Size]byte{}
	b[7] = 0x80
	assert.Equal(t, int64(0), Decode(b[:]))
}

func TestEncodeSignBit(t *testing.T) {
	b := Bytes(-5)
	assert.Equal(t, byte(0x80), b[7]&0x80)
	assert.Equal(t, byte(5), b[0])

	b = Bytes(5)
	assert.Equal(t, byte(0), b[7]&0x80)
}

func TestWriteToReadFrom(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTo(&buf, -123456789))
	require.NoError(t, WriteTo(&buf, 0))

	v, err := ReadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(-123456789), v)

	v, err = ReadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	_, err = ReadFrom(&buf)
	assert.Equal(t, io.EOF, err)
}

func TestReadFromTruncated(t *testing.T) {
	buf := bytes.NewReader([]byte{1, 2, 3})
	_, err := ReadFrom(buf)
	assert.Error(t, err)
}
