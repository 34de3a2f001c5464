// pkg/wire/varlong.go
// 64 位变长整数编解码，与 VarInt 同一算法，上限 10 字节
package wire

import (
	"io"
	"math/bits"
)

// MaxVarLongLen VarLong 编码后的最大字节数
const MaxVarLongLen = 10

// VarLongLen 返回 v 编码后占用的字节数 (1..=10)
func VarLongLen(v int64) int {
	return (63-bits.LeadingZeros64(uint64(v)|1))/7 + 1
}

// AppendVarLong 将 v 编码后追加到 dst，返回扩展后的切片
func AppendVarLong(dst []byte, v int64) []byte {
	uv := uint64(v)
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

// PutVarLong 将 v 编码写入 b，返回写入的字节数
// b 的长度必须不小于 VarLongLen(v)，否则 panic
func PutVarLong(b []byte, v int64) int {
	uv := uint64(v)
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

// WriteVarLong 将 v 编码后写入 w，返回写入的字节数
func WriteVarLong(w io.Writer, v int64) (int, error) {
	var buf [MaxVarLongLen]byte
	n := PutVarLong(buf[:], v)
	return w.Write(buf[:n])
}

// DecodeVarLong 从 b 的开头解码一个 VarLong
//
// 返回值约定与 DecodeVarInt 相同：n == 0 且 err == nil 表示数据不足，
// 读到第 11 个延续字节返回 ErrMalformedVarLong。
func DecodeVarLong(b []byte) (v int64, n int, err error) {
	var uv uint64
	for i := 0; i < len(b); i++ {
		if i >= MaxVarLongLen {
			return 0, 0, ErrMalformedVarLong
		}
		c := b[i]
		uv |= uint64(c&0x7F) << (7 * i)
		if c&0x80 == 0 {
			return int64(uv), i + 1, nil
		}
	}
	if len(b) >= MaxVarLongLen {
		return 0, 0, ErrMalformedVarLong
	}
	return 0, 0, nil
}

// ReadVarLong 从 r 逐字节读取并解码一个 VarLong
func ReadVarLong(r io.Reader) (int64, error) {
	var uv uint64
	var buf [1]byte
	for i := 0; ; i++ {
		if i >= MaxVarLongLen {
			return 0, ErrMalformedVarLong
		}
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		c := buf[0]
		uv |= uint64(c&0x7F) << (7 * i)
		if c&0x80 == 0 {
			return int64(uv), nil
		}
	}
}
