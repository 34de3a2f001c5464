package compress

import "github.com/cockroachdb/errors"

var (
	// ErrLengthMismatch 解压产出与声明的未压缩长度不一致
	ErrLengthMismatch = errors.New("compress: decompressed length mismatch")
)
