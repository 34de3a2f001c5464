package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCFB8_RoundTrip(t *testing.T) {
	key := []byte("0123456789abcdef")

	enc, err := NewCFB8(key, key, false)
	require.NoError(t, err)
	dec, err := NewCFB8(key, key, true)
	require.NoError(t, err)

	plaintext := []byte("hello, this is a stream cipher test with more than one block of data")

	ciphertext := make([]byte, len(plaintext))
	enc.XORKeyStream(ciphertext, plaintext)
	assert.NotEqual(t, plaintext, ciphertext)

	decrypted := make([]byte, len(ciphertext))
	dec.XORKeyStream(decrypted, ciphertext)
	assert.Equal(t, plaintext, decrypted)
}

func TestCFB8_StreamContinuity(t *testing.T) {
	key := []byte("0123456789abcdef")
	plaintext := bytes.Repeat([]byte("abcdefgh"), 16)

	// 一次性加密
	whole, err := NewCFB8(key, key, false)
	require.NoError(t, err)
	want := make([]byte, len(plaintext))
	whole.XORKeyStream(want, plaintext)

	// 分段加密，任意切分点，密钥流必须连续
	for _, split := range []int{1, 7, 16, 17, 100} {
		part, err := NewCFB8(key, key, false)
		require.NoError(t, err)

		got := make([]byte, len(plaintext))
		part.XORKeyStream(got[:split], plaintext[:split])
		part.XORKeyStream(got[split:], plaintext[split:])

		assert.Equal(t, want, got, "split=%d", split)
	}
}

func TestCFB8_InPlace(t *testing.T) {
	key := []byte("fedcba9876543210")

	enc, err := NewCFB8(key, key, false)
	require.NoError(t, err)
	ref, err := NewCFB8(key, key, false)
	require.NoError(t, err)

	plaintext := []byte("in-place encryption")
	want := make([]byte, len(plaintext))
	ref.XORKeyStream(want, plaintext)

	buf := append([]byte(nil), plaintext...)
	enc.XORKeyStream(buf, buf)
	assert.Equal(t, want, buf)
}

func TestNewCFB8_InvalidKey(t *testing.T) {
	_, err := NewCFB8([]byte("short"), []byte("short"), false)
	assert.Error(t, err)

	// AES-256 长度的 key 也不行，协议固定 AES-128
	long := bytes.Repeat([]byte{0x42}, 32)
	_, err = NewCFB8(long, long[:16], false)
	assert.Error(t, err)
}

func TestNewCFB8_InvalidIV(t *testing.T) {
	key := []byte("0123456789abcdef")
	_, err := NewCFB8(key, key[:8], false)
	assert.Error(t, err)
}
