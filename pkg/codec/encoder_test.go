package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gingeh/valence/pkg/compress"
	"github.com/Gingeh/valence/pkg/crypto"
	"github.com/Gingeh/valence/pkg/logger"
	"github.com/Gingeh/valence/pkg/packet"
	"github.com/Gingeh/valence/pkg/wire"
)

// encodeFrame 用独立编码器组一帧，作为测试的参照字节
func encodeFrame(t *testing.T, cfg *Config, p packet.Packet) []byte {
	t.Helper()
	e, err := NewEncoder(cfg)
	require.NoError(t, err)
	require.NoError(t, e.AppendPacket(p))
	return e.Take()
}

// encodePayload 序列化 varint(包 ID) ++ 包体，不组帧
func encodePayload(t *testing.T, p packet.Packet) []byte {
	t.Helper()
	sw := &sliceWriter{}
	_, err := wire.WriteVarInt(sw, p.ID())
	require.NoError(t, err)
	require.NoError(t, p.Encode(sw))
	return sw.b
}

func TestEncoder_AppendNoCompression(t *testing.T) {
	e, err := NewEncoder(nil)
	require.NoError(t, err)

	p := &packet.KeepAlive{Salt: 0x1122334455667788}
	require.NoError(t, e.AppendPacket(p))

	// varint(9) ++ varint(0x23) ++ 8 字节大端 Salt
	want := []byte{
		0x09,
		0x23,
		0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88,
	}
	assert.Equal(t, len(want), e.Len())
	assert.Equal(t, want, e.Take())
	assert.Equal(t, 0, e.Len())
}

func TestEncoder_AppendBelowThreshold(t *testing.T) {
	e, err := NewEncoder(&Config{CompressionThreshold: 256})
	require.NoError(t, err)

	p := &packet.KeepAlive{Salt: 0x1122334455667788}
	require.NoError(t, e.AppendPacket(p))

	// payload 9 字节未达阈值：varint(1+9) ++ varint(0) ++ payload
	want := []byte{
		0x0A,
		0x00,
		0x23,
		0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88,
	}
	assert.Equal(t, want, e.Take())
}

func TestEncoder_AppendAboveThreshold(t *testing.T) {
	e, err := NewEncoder(&Config{CompressionThreshold: 256})
	require.NoError(t, err)

	p := &packet.Disconnect{Reason: strings.Repeat("a", 300)}
	payload := encodePayload(t, p)
	require.Greater(t, len(payload), 256)

	require.NoError(t, e.AppendPacket(p))
	frame := e.Take()

	// 外层 varint 覆盖余下全部字节
	packetLen, n, err := wire.DecodeVarInt(frame)
	require.NoError(t, err)
	require.Equal(t, len(frame)-n, int(packetLen))

	// 内层 varint 为未压缩长度
	dataLen, m, err := wire.DecodeVarInt(frame[n:])
	require.NoError(t, err)
	require.Equal(t, len(payload), int(dataLen))

	// 压缩数据可还原出 payload
	comp := compress.MustNew(compress.TypeZlib)
	got, err := comp.DecompressLen(frame[n+m:], len(payload))
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// 可压缩数据组帧后应当更短
	assert.Less(t, len(frame), len(payload))
}

func TestEncoder_MultipleAppendsGrowBuffer(t *testing.T) {
	e, err := NewEncoder(nil)
	require.NoError(t, err)

	p := &packet.KeepAlive{Salt: 7}
	payload := encodePayload(t, p)
	frameLen := wire.VarIntLen(int32(len(payload))) + len(payload)

	for i := 1; i <= 5; i++ {
		require.NoError(t, e.AppendPacket(p))
		assert.Equal(t, i*frameLen, e.Len())
	}
}

func TestEncoder_Prepend(t *testing.T) {
	e, err := NewEncoder(nil)
	require.NoError(t, err)

	a := &packet.KeepAlive{Salt: 1}
	b := &packet.KeepAlive{Salt: 2}
	c := &packet.Disconnect{Reason: "shutting down"}

	require.NoError(t, e.AppendPacket(a))
	require.NoError(t, e.AppendPacket(b))
	require.NoError(t, e.PrependPacket(c))

	var want []byte
	want = append(want, encodeFrame(t, nil, c)...)
	want = append(want, encodeFrame(t, nil, a)...)
	want = append(want, encodeFrame(t, nil, b)...)
	assert.Equal(t, want, e.Take())
}

func TestEncoder_PrependIntoEmptyBuffer(t *testing.T) {
	e, err := NewEncoder(nil)
	require.NoError(t, err)

	p := &packet.KeepAlive{Salt: 3}
	require.NoError(t, e.PrependPacket(p))
	assert.Equal(t, encodeFrame(t, nil, p), e.Take())
}

func TestEncoder_AppendBytes(t *testing.T) {
	e, err := NewEncoder(nil)
	require.NoError(t, err)

	// 原始字节原样进入缓冲区，不做组帧
	raw := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	e.AppendBytes(raw)
	assert.Equal(t, raw, e.Take())
}

func TestEncoder_Clear(t *testing.T) {
	e, err := NewEncoder(nil)
	require.NoError(t, err)

	require.NoError(t, e.AppendPacket(&packet.KeepAlive{Salt: 1}))
	e.Clear()
	assert.Equal(t, 0, e.Len())

	// Clear 不影响后续使用
	p := &packet.KeepAlive{Salt: 2}
	require.NoError(t, e.AppendPacket(p))
	assert.Equal(t, encodeFrame(t, nil, p), e.Take())
}

func TestEncoder_PacketTooLarge(t *testing.T) {
	e, err := NewEncoder(&Config{MaxPacketSize: 16, Logger: logger.NewNoop()})
	require.NoError(t, err)

	small := &packet.KeepAlive{Salt: 1}
	require.NoError(t, e.AppendPacket(small))
	snapshot := append([]byte(nil), encodeFrame(t, nil, small)...)

	big := &packet.Disconnect{Reason: strings.Repeat("x", 64)}
	err = e.AppendPacket(big)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPacketTooLarge)

	// 失败的追加不留任何痕迹
	assert.Equal(t, snapshot, e.Take())
}

func TestEncoder_PacketTooLargeCompressed(t *testing.T) {
	e, err := NewEncoder(&Config{CompressionThreshold: 16, MaxPacketSize: 32})
	require.NoError(t, err)

	// 随机性差的重复数据压得很小，不会超限
	require.NoError(t, e.AppendPacket(&packet.Disconnect{Reason: strings.Repeat("a", 100)}))
	e.Clear()

	// 压缩后仍超限的包被拒绝
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		sb.WriteByte(byte(i*7 + 13))
	}
	err = e.AppendPacket(&packet.Disconnect{Reason: sb.String()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPacketTooLarge)
	assert.Equal(t, 0, e.Len())
}

func TestEncoder_SetCompression(t *testing.T) {
	e, err := NewEncoder(nil)
	require.NoError(t, err)

	p := &packet.KeepAlive{Salt: 9}
	require.NoError(t, e.AppendPacket(p))

	// 压缩协商后的包用新的组帧规则，已缓冲的帧不受影响
	e.SetCompression(256)
	require.NoError(t, e.AppendPacket(p))

	var want []byte
	want = append(want, encodeFrame(t, nil, p)...)
	want = append(want, encodeFrame(t, &Config{CompressionThreshold: 256}, p)...)
	assert.Equal(t, want, e.Take())
}

func TestEncoder_Encryption(t *testing.T) {
	key := []byte("0123456789abcdef")

	e, err := NewEncoder(nil)
	require.NoError(t, err)
	e.EnableEncryption(key)

	p1 := &packet.KeepAlive{Salt: 100}
	p2 := &packet.Disconnect{Reason: "bye"}

	require.NoError(t, e.AppendPacket(p1))
	take1 := e.Take()
	require.NoError(t, e.AppendPacket(p2))
	take2 := e.Take()

	var plain []byte
	plain = append(plain, encodeFrame(t, nil, p1)...)
	plain = append(plain, encodeFrame(t, nil, p2)...)

	// 密文不等于明文
	ciphertext := append(append([]byte(nil), take1...), take2...)
	require.NotEqual(t, plain, ciphertext)

	// 密钥流跨 Take 连续：一次性解密两段拼接应还原明文
	dec, err := crypto.NewCFB8(key, key, true)
	require.NoError(t, err)
	dec.XORKeyStream(ciphertext, ciphertext)
	assert.Equal(t, plain, ciphertext)
}

func TestEncoder_EncryptionCoversEarlierBytes(t *testing.T) {
	key := []byte("0123456789abcdef")

	e, err := NewEncoder(nil)
	require.NoError(t, err)

	p1 := &packet.KeepAlive{Salt: 1}
	p2 := &packet.KeepAlive{Salt: 2}

	// 启用加密前追加的字节同样在 Take 时被加密
	require.NoError(t, e.AppendPacket(p1))
	e.EnableEncryption(key)
	require.NoError(t, e.AppendPacket(p2))
	got := e.Take()

	var plain []byte
	plain = append(plain, encodeFrame(t, nil, p1)...)
	plain = append(plain, encodeFrame(t, nil, p2)...)

	dec, err := crypto.NewCFB8(key, key, true)
	require.NoError(t, err)
	dec.XORKeyStream(got, got)
	assert.Equal(t, plain, got)
}

func TestEncoder_EnableEncryptionTwicePanics(t *testing.T) {
	key := []byte("0123456789abcdef")

	e, err := NewEncoder(nil)
	require.NoError(t, err)
	e.EnableEncryption(key)

	assert.PanicsWithValue(t, "codec: encryption is already enabled", func() {
		e.EnableEncryption(key)
	})
}

func TestEncoder_WritePacketDropsOversized(t *testing.T) {
	e, err := NewEncoder(&Config{MaxPacketSize: 16, Logger: logger.NewNoop()})
	require.NoError(t, err)

	// WritePacket 不返回错误，超限的包记日志后丢弃
	e.WritePacket(&packet.Disconnect{Reason: strings.Repeat("x", 64)})
	assert.Equal(t, 0, e.Len())

	p := &packet.KeepAlive{Salt: 5}
	e.WritePacket(p)
	assert.Equal(t, encodeFrame(t, nil, p), e.Take())
}

func TestPacketWriter_MatchesEncoderFraming(t *testing.T) {
	for _, threshold := range []int{-1, 256} {
		cfg := &Config{CompressionThreshold: threshold, Logger: logger.NewNoop()}

		w, err := NewPacketWriter(cfg)
		require.NoError(t, err)

		p := &packet.Disconnect{Reason: strings.Repeat("b", 300)}
		w.WritePacket(p)
		w.WriteBytes([]byte{0x01, 0x02})

		want := append([]byte(nil), encodeFrame(t, cfg, p)...)
		want = append(want, 0x01, 0x02)
		assert.Equal(t, want, w.Bytes())
	}
}
