// Package packet 定义消息包抽象：每个消息类型提供整数 ID 与包体的编解码能力。
// 包体布局由各消息类型自行定义，本层只约定编解码对称：Decode(Encode(p)) == p。
package packet

import "io"

// Packet 消息包接口
//
// Encode 只向 w 写入包体字节（不含长度前缀与包 ID），Decode 假定调用方
// 已经根据包 ID 完成分发，从 r 中读取包体并填充自身。两者除读写游标外
// 不得有任何副作用。
type Packet interface {
	// ID 返回协议定义的包 ID
	ID() int32

	// Encode 将包体写入 w
	Encode(w io.Writer) error

	// Decode 从 r 读取包体
	Decode(r io.Reader) error
}

// Writer 消息包写入目标
//
// 两种实现：带缓冲的连接编码器（codec.Encoder），以及一次性字节缓冲写入器
// （codec.PacketWriter）。上层无需关心是哪一种。
//
// 编码失败不向调用方传播：记录日志后丢弃该包，避免单个异常包中断整条
// 连接的发送循环。
type Writer interface {
	// WritePacket 编码并写入一个消息包
	WritePacket(p Packet)

	// WriteBytes 直接写入已组帧的原始字节，跳过组帧逻辑
	WriteBytes(b []byte)
}
