// pkg/wire/varint.go
// 32 位变长整数编解码（7 bit 分组 + 延续位）
package wire

import (
	"io"
	"math/bits"
)

// MaxVarIntLen VarInt 编码后的最大字节数
const MaxVarIntLen = 5

// VarIntLen 返回 v 编码后占用的字节数 (1..=5)
//
// 编码使用原始补码位型，不做 zigzag 折叠，因此负数总是占满 5 字节。
// 这是协议兼容性要求，不是可优化项。
func VarIntLen(v int32) int {
	// v|1 保证至少 1 个有效位，0 也编码为 1 字节
	return (31-bits.LeadingZeros32(uint32(v)|1))/7 + 1
}

// AppendVarInt 将 v 编码后追加到 dst，返回扩展后的切片
func AppendVarInt(dst []byte, v int32) []byte {
	uv := uint32(v)
	for {
		b := byte(uv & 0x7F)
		uv >>= 7
		if uv != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
		if uv == 0 {
			return dst
		}
	}
}

// PutVarInt 将 v 编码写入 b，返回写入的字节数
// b 的长度必须不小于 VarIntLen(v)，否则 panic
func PutVarInt(b []byte, v int32) int {
	uv := uint32(v)
	i := 0
	for {
		c := byte(uv & 0x7F)
		uv >>= 7
		if uv != 0 {
			c |= 0x80
		}
		b[i] = c
		i++
		if uv == 0 {
			return i
		}
	}
}

// WriteVarInt 将 v 编码后写入 w，返回写入的字节数
func WriteVarInt(w io.Writer, v int32) (int, error) {
	var buf [MaxVarIntLen]byte
	n := PutVarInt(buf[:], v)
	return w.Write(buf[:n])
}

// DecodeVarInt 从 b 的开头解码一个 VarInt
//
// 返回值 n 为消耗的字节数。n == 0 且 err == nil 表示 b 在变长整数
// 中途截断，需要更多数据。读到第 6 个延续字节返回 ErrMalformedVarInt。
func DecodeVarInt(b []byte) (v int32, n int, err error) {
	var uv uint32
	for i := 0; i < len(b); i++ {
		if i >= MaxVarIntLen {
			return 0, 0, ErrMalformedVarInt
		}
		c := b[i]
		uv |= uint32(c&0x7F) << (7 * i)
		if c&0x80 == 0 {
			return int32(uv), i + 1, nil
		}
	}
	if len(b) >= MaxVarIntLen {
		return 0, 0, ErrMalformedVarInt
	}
	return 0, 0, nil
}

// ReadVarInt 从 r 逐字节读取并解码一个 VarInt
func ReadVarInt(r io.Reader) (int32, error) {
	var uv uint32
	var buf [1]byte
	for i := 0; ; i++ {
		if i >= MaxVarIntLen {
			return 0, ErrMalformedVarInt
		}
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		c := buf[0]
		uv |= uint32(c&0x7F) << (7 * i)
		if c&0x80 == 0 {
			return int32(uv), nil
		}
	}
}
