// pkg/compress/none.go
package compress

import "github.com/cockroachdb/errors"

// noneCompressor 不压缩实现
type noneCompressor struct{}

// Compress 返回数据副本（不压缩）
func (c *noneCompressor) Compress(src []byte) ([]byte, error) {
	if src == nil {
		return nil, nil
	}
	dst := make([]byte, len(src))
	copy(dst, src)
	return dst, nil
}

// Decompress 返回数据副本（不解压）
func (c *noneCompressor) Decompress(src []byte) ([]byte, error) {
	if src == nil {
		return nil, nil
	}
	dst := make([]byte, len(src))
	copy(dst, src)
	return dst, nil
}

// DecompressLen 返回数据副本并校验长度
func (c *noneCompressor) DecompressLen(src []byte, expected int) ([]byte, error) {
	if len(src) != expected {
		return nil, errors.Wrapf(ErrLengthMismatch, "expected %d bytes, got %d", expected, len(src))
	}
	dst := make([]byte, len(src))
	copy(dst, src)
	return dst, nil
}

// Name 返回压缩算法名称
func (c *noneCompressor) Name() string {
	return string(TypeNone)
}
