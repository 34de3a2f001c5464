// pkg/packet/packets.go
// 传输层自身参与的几个消息包。其余消息类型由上层定义。
package packet

import (
	"io"

	"github.com/Gingeh/valence/pkg/wire"
)

// 包 ID
const (
	IDLoginCompression int32 = 0x03
	IDDisconnect       int32 = 0x1A
	IDKeepAlive        int32 = 0x23
)

// LoginCompression 压缩阈值协商包（服务端 → 客户端）
//
// 发送后双方以 Threshold 作为压缩阈值；负值表示关闭压缩。
type LoginCompression struct {
	Threshold int32
}

func (*LoginCompression) ID() int32 { return IDLoginCompression }

func (p *LoginCompression) Encode(w io.Writer) error {
	_, err := wire.WriteVarInt(w, p.Threshold)
	return err
}

func (p *LoginCompression) Decode(r io.Reader) error {
	v, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	p.Threshold = v
	return nil
}

// Disconnect 断开连接通知包
type Disconnect struct {
	Reason string
}

func (*Disconnect) ID() int32 { return IDDisconnect }

func (p *Disconnect) Encode(w io.Writer) error {
	return wire.WriteString(w, p.Reason)
}

func (p *Disconnect) Decode(r io.Reader) error {
	s, err := wire.ReadString(r)
	if err != nil {
		return err
	}
	p.Reason = s
	return nil
}

// KeepAlive 保活包，ID 原样回显
type KeepAlive struct {
	Salt int64
}

func (*KeepAlive) ID() int32 { return IDKeepAlive }

func (p *KeepAlive) Encode(w io.Writer) error {
	return wire.WriteLong(w, p.Salt)
}

func (p *KeepAlive) Decode(r io.Reader) error {
	v, err := wire.ReadLong(r)
	if err != nil {
		return err
	}
	p.Salt = v
	return nil
}
