// pkg/compress/zlib.go
package compress

import (
	"bytes"
	"io"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zlib"

	"github.com/Gingeh/valence/pkg/pool/bytebuff"
)

// zlibLevel 压缩等级，线上格式约定为 4（速度与压缩比的折中）
const zlibLevel = 4

// zlibCompressor Zlib 压缩实现
//
// writer 通过 sync.Pool 复用，压缩中间产物走 valyala 自校准池，
// 避免逐包分配 deflate 状态机。
type zlibCompressor struct {
	writers sync.Pool
}

func newZlibCompressor() (*zlibCompressor, error) {
	return &zlibCompressor{}, nil
}

// Compress 使用 Zlib 压缩数据
func (c *zlibCompressor) Compress(src []byte) ([]byte, error) {
	if src == nil {
		return nil, nil
	}

	buf := bytebuff.GetValyala()
	defer bytebuff.PutValyala(buf)

	var zw *zlib.Writer
	if v := c.writers.Get(); v != nil {
		zw = v.(*zlib.Writer)
		zw.Reset(buf)
	} else {
		w, err := zlib.NewWriterLevel(buf, zlibLevel)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create zlib writer")
		}
		zw = w
	}

	if _, err := zw.Write(src); err != nil {
		return nil, errors.Wrap(err, "zlib compress failed")
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "zlib flush failed")
	}
	c.writers.Put(zw)

	dst := make([]byte, buf.Len())
	copy(dst, buf.B)
	return dst, nil
}

// Decompress 使用 Zlib 解压数据
func (c *zlibCompressor) Decompress(src []byte) ([]byte, error) {
	if src == nil {
		return nil, nil
	}

	zr, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create zlib reader")
	}
	defer zr.Close()

	dst, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrap(err, "zlib decompress failed")
	}
	return dst, nil
}

// DecompressLen 解压数据并校验产出恰好为 expected 字节
//
// 读取上限就是 expected，声明长度造假时不会产生超额分配。
func (c *zlibCompressor) DecompressLen(src []byte, expected int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create zlib reader")
	}
	defer zr.Close()

	dst := make([]byte, expected)
	if _, err := io.ReadFull(zr, dst); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errors.Wrapf(ErrLengthMismatch, "expected %d bytes", expected)
		}
		return nil, errors.Wrap(err, "zlib decompress failed")
	}

	// 声明长度之外还有产出同样视为不一致
	var extra [1]byte
	if n, _ := zr.Read(extra[:]); n > 0 {
		return nil, errors.Wrapf(ErrLengthMismatch, "output exceeds declared %d bytes", expected)
	}

	return dst, nil
}

// Name 返回压缩算法名称
func (c *zlibCompressor) Name() string {
	return string(TypeZlib)
}
