// pkg/codec/encode.go
// 组帧算法本体，Encoder 与 PacketWriter 共用
package codec

import (
	"github.com/cockroachdb/errors"

	"github.com/Gingeh/valence/pkg/compress"
	"github.com/Gingeh/valence/pkg/packet"
	"github.com/Gingeh/valence/pkg/wire"
)

// sliceWriter 把 io.Writer 适配到追加式 []byte
type sliceWriter struct {
	b []byte
}

func (w *sliceWriter) Write(p []byte) (int, error) {
	w.b = append(w.b, p...)
	return len(p), nil
}

// appendFrame 序列化 p 并按组帧规则追加到 buf 尾部
//
// 帧布局：
//
//	压缩关闭          varint(dataLen) ++ payload
//	压缩开启，未达阈值  varint(1+dataLen) ++ varint(0) ++ payload
//	压缩开启，超过阈值  varint(dls+clen) ++ varint(dataLen) ++ compressed
//
// 其中 payload = varint(包 ID) ++ 包体，dataLen 为 payload 未压缩长度，
// dls 为 varint(dataLen) 的编码长度。内层 varint 兼作压缩标记（0 表示未压缩）。
//
// 任何失败都把 buf 截断回调用前的长度后返回，不留下部分写入。
func appendFrame(buf []byte, p packet.Packet, threshold int, maxPacketSize int32, comp compress.Compressor) ([]byte, error) {
	startLen := len(buf)

	sw := sliceWriter{b: buf}
	if _, err := wire.WriteVarInt(&sw, p.ID()); err != nil {
		return buf[:startLen], errors.Wrap(err, "failed to encode packet id")
	}
	if err := p.Encode(&sw); err != nil {
		return sw.b[:startLen], errors.Wrapf(err, "failed to encode packet %#x", p.ID())
	}
	buf = sw.b

	dataLen := len(buf) - startLen

	if threshold >= 0 {
		if dataLen > threshold {
			compressed, err := comp.Compress(buf[startLen:])
			if err != nil {
				return buf[:startLen], errors.Wrapf(err, "failed to compress packet %#x", p.ID())
			}

			dataLenSize := wire.VarIntLen(int32(dataLen))
			packetLen := dataLenSize + len(compressed)
			if packetLen > int(maxPacketSize) {
				return buf[:startLen], errors.Wrapf(ErrPacketTooLarge, "len=%d max=%d", packetLen, maxPacketSize)
			}

			buf = buf[:startLen]
			buf = wire.AppendVarInt(buf, int32(packetLen))
			buf = wire.AppendVarInt(buf, int32(dataLen))
			return append(buf, compressed...), nil
		}

		// 未达阈值：内层 varint(0) 标记未压缩，占 1 字节
		const dataLenSize = 1
		packetLen := dataLenSize + dataLen
		if packetLen > int(maxPacketSize) {
			return buf[:startLen], errors.Wrapf(ErrPacketTooLarge, "len=%d max=%d", packetLen, maxPacketSize)
		}

		prefixLen := wire.VarIntLen(int32(packetLen)) + dataLenSize
		buf = openGap(buf, startLen, prefixLen)
		n := wire.PutVarInt(buf[startLen:], int32(packetLen))
		buf[startLen+n] = 0
		return buf, nil
	}

	packetLen := dataLen
	if packetLen > int(maxPacketSize) {
		return buf[:startLen], errors.Wrapf(ErrPacketTooLarge, "len=%d max=%d", packetLen, maxPacketSize)
	}

	prefixLen := wire.VarIntLen(int32(packetLen))
	buf = openGap(buf, startLen, prefixLen)
	wire.PutVarInt(buf[startLen:], int32(packetLen))
	return buf, nil
}

// openGap 在 buf[at:] 之前腾出 n 字节空间，原内容整体后移
func openGap(buf []byte, at, n int) []byte {
	var pad [wire.MaxVarIntLen + 1]byte
	buf = append(buf, pad[:n]...)
	copy(buf[at+n:], buf[at:len(buf)-n])
	return buf
}
