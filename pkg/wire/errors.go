package wire

import "github.com/cockroachdb/errors"

var (
	// 变长整数错误
	ErrMalformedVarInt  = errors.New("wire: malformed varint (exceeds 5 bytes)")
	ErrMalformedVarLong = errors.New("wire: malformed varlong (exceeds 10 bytes)")

	// 字符串错误
	ErrStringTooLong = errors.New("wire: string exceeds maximum length")
	ErrNegativeLen   = errors.New("wire: negative length prefix")
)
