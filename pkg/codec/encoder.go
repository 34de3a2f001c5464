// pkg/codec/encoder.go
// 连接发送侧的包编码器：组帧、可选压缩、可选整流加密
package codec

import (
	"github.com/cockroachdb/errors"

	"github.com/Gingeh/valence/pkg/compress"
	"github.com/Gingeh/valence/pkg/config"
	"github.com/Gingeh/valence/pkg/crypto"
	"github.com/Gingeh/valence/pkg/logger"
	"github.com/Gingeh/valence/pkg/packet"
	"github.com/Gingeh/valence/pkg/pool/bytebuff"
)

// 确保 Encoder 实现了 packet.Writer 接口
var _ packet.Writer = (*Encoder)(nil)

// Encoder 包编码器
//
// 每条连接在会话开始时创建一个，独占使用直到连接关闭。所有操作都是
// 同步的纯内存操作，无内部锁；缓冲区内容只通过 Take 一次性移交出去。
type Encoder struct {
	buf []byte

	threshold     int
	maxPacketSize int32
	compressor    compress.Compressor

	// 启用后不可更换不可重置，密钥流跨 Take 调用连续
	cipher *crypto.CFB8

	log logger.Logger
}

// NewEncoder 创建包编码器，cfg 为 nil 时使用默认配置
func NewEncoder(cfg *Config) (*Encoder, error) {
	merged, err := config.MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to merge config")
	}

	log := merged.Logger
	if log == nil {
		log = logger.Default().Named("codec")
	}

	return &Encoder{
		threshold:     merged.CompressionThreshold,
		maxPacketSize: merged.MaxPacketSize,
		compressor:    compress.MustNew(compress.TypeZlib),
		log:           log,
	}, nil
}

// AppendPacket 组帧 p 并追加到缓冲区尾部
//
// 返回 ErrPacketTooLarge 时缓冲区与调用前完全一致。
func (e *Encoder) AppendPacket(p packet.Packet) error {
	buf, err := appendFrame(e.buf, p, e.threshold, e.maxPacketSize, e.compressor)
	e.buf = buf
	return err
}

// PrependPacket 组帧 p 并插入到所有已缓冲字节之前
//
// 已缓冲的帧原样整体后移，相对顺序不变。开销是 O(当前缓冲长度)，
// 只用于必须抢在已排队包之前发出的包（例如断开通知）。
func (e *Encoder) PrependPacket(p packet.Packet) error {
	startLen := len(e.buf)
	if err := e.AppendPacket(p); err != nil {
		return err
	}
	frameLen := len(e.buf) - startLen

	scratch := bytebuff.Get(frameLen)
	defer bytebuff.Put(scratch)
	scratch.Write(e.buf[startLen:])

	copy(e.buf[frameLen:], e.buf[:startLen])
	copy(e.buf, scratch.Bytes())
	return nil
}

// AppendBytes 追加已组帧的原始字节，跳过组帧逻辑
func (e *Encoder) AppendBytes(b []byte) {
	e.buf = append(e.buf, b...)
}

// Take 取走当前缓冲的全部字节，所有权移交调用方
//
// 若已启用加密，移交前对缓冲区内全部字节就地加密——包括启用加密之前
// 追加的字节（此前没有任何字节被加密过，因此不存在二次加密）。
// 调用后缓冲区为空，阈值与密码器状态保留。
func (e *Encoder) Take() []byte {
	if e.cipher != nil {
		e.cipher.XORKeyStream(e.buf, e.buf)
	}
	out := e.buf
	e.buf = nil
	return out
}

// Clear 丢弃当前缓冲的全部字节，保留配置
func (e *Encoder) Clear() {
	e.buf = e.buf[:0]
}

// Len 返回当前缓冲的字节数
func (e *Encoder) Len() int {
	return len(e.buf)
}

// SetCompression 设置压缩阈值，负值关闭压缩
func (e *Encoder) SetCompression(threshold int) {
	e.threshold = threshold
}

// EnableEncryption 启用整流加密，key 为 16 字节（AES-128），同时用作 IV
//
// 单向一次性转换：重复调用属于编程错误，直接 panic。
func (e *Encoder) EnableEncryption(key []byte) {
	if e.cipher != nil {
		panic("codec: encryption is already enabled")
	}
	c, err := crypto.NewCFB8(key, key, false)
	if err != nil {
		panic(err)
	}
	e.cipher = c
}

// WritePacket 实现 packet.Writer：编码失败记日志后丢弃该包
func (e *Encoder) WritePacket(p packet.Packet) {
	if err := e.AppendPacket(p); err != nil {
		e.log.Warn("failed to write packet", "packet_id", p.ID(), "error", err)
	}
}

// WriteBytes 实现 packet.Writer
func (e *Encoder) WriteBytes(b []byte) {
	e.AppendBytes(b)
}
