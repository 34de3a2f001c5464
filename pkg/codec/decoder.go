// pkg/codec/decoder.go
// 连接接收侧的包解码器，按编码器的组帧规则做逆变换
package codec

import (
	"github.com/cockroachdb/errors"

	"github.com/Gingeh/valence/pkg/compress"
	"github.com/Gingeh/valence/pkg/config"
	"github.com/Gingeh/valence/pkg/crypto"
	"github.com/Gingeh/valence/pkg/wire"
)

// Decoder 包解码器
//
// 与 Encoder 成对创建，独占使用。传输层把收到的字节喂给 QueueBytes，
// 然后反复调用 TryNextPacket 取出完整的包。
type Decoder struct {
	buf []byte

	threshold     int
	maxPacketSize int32
	compressor    compress.Compressor

	cipher *crypto.CFB8
}

// NewDecoder 创建包解码器，cfg 为 nil 时使用默认配置
func NewDecoder(cfg *Config) (*Decoder, error) {
	merged, err := config.MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to merge config")
	}

	return &Decoder{
		threshold:     merged.CompressionThreshold,
		maxPacketSize: merged.MaxPacketSize,
		compressor:    compress.MustNew(compress.TypeZlib),
	}, nil
}

// QueueBytes 喂入从传输层收到的字节
//
// 若已启用加密，字节在入队时就地解密，后续解析一律面向明文。
func (d *Decoder) QueueBytes(b []byte) {
	start := len(d.buf)
	d.buf = append(d.buf, b...)
	if d.cipher != nil {
		d.cipher.XORKeyStream(d.buf[start:], d.buf[start:])
	}
}

// TryNextPacket 尝试取出下一个完整包的 payload（varint 包 ID ++ 包体）
//
// 返回 (nil, nil) 表示已入队的字节还凑不齐一个完整帧，需要更多数据；
// 这不是错误。返回的切片在下一次 QueueBytes 之前有效，包 ID 分发由
// 调用方完成。任何非 nil 错误都意味着字节流已损坏，连接应当关闭。
func (d *Decoder) TryNextPacket() ([]byte, error) {
	packetLen, n, err := wire.DecodeVarInt(d.buf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode packet length")
	}
	if n == 0 {
		return nil, nil
	}
	if packetLen < 0 || packetLen > d.maxPacketSize {
		return nil, errors.Wrapf(ErrPacketTooLarge, "len=%d max=%d", packetLen, d.maxPacketSize)
	}
	if len(d.buf)-n < int(packetLen) {
		return nil, nil
	}

	frame := d.buf[n : n+int(packetLen)]
	// 只前移游标，不回收已消费区段：已返回的 payload 仍指向旧区段
	d.buf = d.buf[n+int(packetLen):]

	if d.threshold < 0 {
		return frame, nil
	}

	dataLen, m, err := wire.DecodeVarInt(frame)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode data length")
	}
	if m == 0 {
		return nil, errors.Wrap(ErrMalformedFrame, "frame truncated inside data length")
	}
	frame = frame[m:]

	if dataLen == 0 {
		// 未压缩标记，余下即为 payload
		return frame, nil
	}
	if dataLen < 0 || dataLen > d.maxPacketSize {
		return nil, errors.Wrapf(ErrPacketTooLarge, "data len=%d max=%d", dataLen, d.maxPacketSize)
	}

	payload, err := d.compressor.DecompressLen(frame, int(dataLen))
	if err != nil {
		if errors.Is(err, compress.ErrLengthMismatch) {
			return nil, errors.Mark(err, ErrDecompressedLengthMismatch)
		}
		return nil, errors.Wrapf(err, "failed to decompress packet")
	}
	return payload, nil
}

// Len 返回已入队但尚未消费的字节数
func (d *Decoder) Len() int {
	return len(d.buf)
}

// SetCompression 设置压缩阈值，负值关闭压缩
//
// 解码侧阈值只决定是否期待内层长度 varint，具体数值不参与判断。
func (d *Decoder) SetCompression(threshold int) {
	d.threshold = threshold
}

// EnableEncryption 启用整流解密，key 为 16 字节（AES-128），同时用作 IV
//
// 与编码侧一样是单向一次性转换，重复调用 panic。已入队未解析的字节
// 不受影响——解密只作用于启用之后入队的字节。
func (d *Decoder) EnableEncryption(key []byte) {
	if d.cipher != nil {
		panic("codec: encryption is already enabled")
	}
	c, err := crypto.NewCFB8(key, key, true)
	if err != nil {
		panic(err)
	}
	d.cipher = c
}
