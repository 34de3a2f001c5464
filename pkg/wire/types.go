// pkg/wire/types.go
// 包体使用的基础线上类型：字符串、布尔、定长整数
package wire

import (
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"
)

// MaxStringLen 字符串的最大字节数（32767 个 UTF-16 码元，按最坏 4 字节 UTF-8 估算）
const MaxStringLen = 32767 * 4

// WriteString 写入 VarInt 长度前缀 + UTF-8 字节
func WriteString(w io.Writer, s string) error {
	if len(s) > MaxStringLen {
		return errors.Wrapf(ErrStringTooLong, "len=%d", len(s))
	}
	if _, err := WriteVarInt(w, int32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// ReadString 读取 VarInt 长度前缀 + UTF-8 字节
func ReadString(r io.Reader) (string, error) {
	n, err := ReadVarInt(r)
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", errors.Wrapf(ErrNegativeLen, "len=%d", n)
	}
	if n > MaxStringLen {
		return "", errors.Wrapf(ErrStringTooLong, "len=%d", n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteBool 写入单字节布尔值
func WriteBool(w io.Writer, v bool) error {
	b := byte(0)
	if v {
		b = 1
	}
	_, err := w.Write([]byte{b})
	return err
}

// ReadBool 读取单字节布尔值
func ReadBool(r io.Reader) (bool, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return false, err
	}
	return buf[0] != 0, nil
}

// WriteLong 写入大端序 int64
func WriteLong(w io.Writer, v int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	_, err := w.Write(buf[:])
	return err
}

// ReadLong 读取大端序 int64
func ReadLong(r io.Reader) (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

// WriteUbyte 写入单字节无符号整数
func WriteUbyte(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return err
}

// ReadUbyte 读取单字节无符号整数
func ReadUbyte(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}
