package wire

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarLong_KnownVectors(t *testing.T) {
	tests := []struct {
		v       int64
		encoded []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{2097151, []byte{0xFF, 0xFF, 0x7F}},
		{math.MaxInt64, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x7F}},
		{-1, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}},
		{math.MinInt64, []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}},
	}

	for _, tt := range tests {
		got := AppendVarLong(nil, tt.v)
		assert.Equal(t, tt.encoded, got, "encode %d", tt.v)
		assert.Equal(t, len(tt.encoded), VarLongLen(tt.v), "written size %d", tt.v)

		v, n, err := DecodeVarLong(tt.encoded)
		require.NoError(t, err)
		assert.Equal(t, tt.v, v)
		assert.Equal(t, len(tt.encoded), n)
	}
}

func TestVarLong_RoundTrip(t *testing.T) {
	values := []int64{
		0, 1, -1, math.MaxInt64, math.MinInt64,
		math.MaxInt32, math.MinInt32,
		1 << 35, -(1 << 35), 1<<56 - 1,
	}

	for _, v := range values {
		enc := AppendVarLong(nil, v)
		require.LessOrEqual(t, len(enc), MaxVarLongLen)
		require.GreaterOrEqual(t, len(enc), 1)

		got, n, err := DecodeVarLong(enc)
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Equal(t, len(enc), n)

		got2, err := ReadVarLong(bytes.NewReader(enc))
		require.NoError(t, err)
		assert.Equal(t, v, got2)
	}
}

func TestVarLong_Malformed(t *testing.T) {
	// 11 字节延续序列属于协议违规
	malformed := bytes.Repeat([]byte{0x80}, 11)

	_, _, err := DecodeVarLong(malformed)
	assert.ErrorIs(t, err, ErrMalformedVarLong)

	_, err = ReadVarLong(bytes.NewReader(malformed))
	assert.ErrorIs(t, err, ErrMalformedVarLong)
}

func TestVarLong_Truncated(t *testing.T) {
	v, n, err := DecodeVarLong(bytes.Repeat([]byte{0x80}, 9))
	assert.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, v)
}
