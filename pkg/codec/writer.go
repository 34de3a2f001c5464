// pkg/codec/writer.go
// 一次性字节缓冲写入器，用于没有持久连接的场景（如构造单条回复）
package codec

import (
	"github.com/cockroachdb/errors"

	"github.com/Gingeh/valence/pkg/compress"
	"github.com/Gingeh/valence/pkg/config"
	"github.com/Gingeh/valence/pkg/logger"
	"github.com/Gingeh/valence/pkg/packet"
)

// 确保 PacketWriter 实现了 packet.Writer 接口
var _ packet.Writer = (*PacketWriter)(nil)

// PacketWriter 一次性包写入器
//
// 与 Encoder 使用同一套组帧规则，但没有加密与前插能力，写完通过
// Bytes 一次性取出。
type PacketWriter struct {
	buf []byte

	threshold     int
	maxPacketSize int32
	compressor    compress.Compressor

	log logger.Logger
}

// NewPacketWriter 创建一次性包写入器，cfg 为 nil 时使用默认配置
func NewPacketWriter(cfg *Config) (*PacketWriter, error) {
	merged, err := config.MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to merge config")
	}

	log := merged.Logger
	if log == nil {
		log = logger.Default().Named("codec")
	}

	return &PacketWriter{
		threshold:     merged.CompressionThreshold,
		maxPacketSize: merged.MaxPacketSize,
		compressor:    compress.MustNew(compress.TypeZlib),
		log:           log,
	}, nil
}

// WritePacket 实现 packet.Writer：编码失败记日志后丢弃该包
func (w *PacketWriter) WritePacket(p packet.Packet) {
	buf, err := appendFrame(w.buf, p, w.threshold, w.maxPacketSize, w.compressor)
	w.buf = buf
	if err != nil {
		w.log.Warn("failed to write packet", "packet_id", p.ID(), "error", err)
	}
}

// WriteBytes 实现 packet.Writer
func (w *PacketWriter) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// Bytes 返回已写入的全部字节
func (w *PacketWriter) Bytes() []byte {
	return w.buf
}
