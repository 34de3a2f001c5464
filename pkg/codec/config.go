// Package codec 实现连接级的包编解码管线：长度前缀组帧、可选 zlib 压缩、
// 可选 AES-128 CFB8 整流加密。编码解码两侧的状态机互为逆变换。
package codec

import "github.com/Gingeh/valence/pkg/logger"

// DefaultMaxPacketSize 组帧后单个包的默认长度上限（2 MiB）
//
// 限制的是长度前缀声明的帧长，编码解码两侧共用。按协议调整时通过
// Config.MaxPacketSize 配置，不要在代码里散落字面量。
const DefaultMaxPacketSize int32 = 2 * 1024 * 1024

// Config 编码器/解码器配置
//
// 一条连接的编码器和解码器各持有一份，互不共享。
type Config struct {
	// 压缩阈值（字节）。包体严格大于该值才压缩，负值关闭压缩。
	// 运行期可通过 SetCompression 调整（通常在压缩协商包之后）。
	CompressionThreshold int `mapstructure:"compression_threshold"`

	// 组帧后单包长度上限
	MaxPacketSize int32 `mapstructure:"max_packet_size"`

	// 编码失败丢包时使用的日志器，nil 时使用全局默认
	Logger logger.Logger `mapstructure:"-"`
}

// DefaultConfig 默认配置：不压缩，2 MiB 上限
func DefaultConfig() *Config {
	return &Config{
		CompressionThreshold: -1,
		MaxPacketSize:        DefaultMaxPacketSize,
	}
}
