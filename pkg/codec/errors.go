package codec

import "github.com/cockroachdb/errors"

var (
	// 编码错误
	// ErrPacketTooLarge 组帧后的包长超过上限；调用方可丢弃该包继续发送，
	// 失败的 Append/Prepend 保证缓冲区与调用前完全一致
	ErrPacketTooLarge = errors.New("codec: packet exceeds maximum length")

	// 解码错误（均视为字节流已失去同步，连接级致命）
	ErrMalformedFrame             = errors.New("codec: malformed packet frame")
	ErrDecompressedLengthMismatch = errors.New("codec: decompressed length mismatch")
)
