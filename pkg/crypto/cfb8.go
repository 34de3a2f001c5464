// pkg/crypto/cfb8.go
// AES 块密码的 8 位反馈（CFB-8）流模式
package crypto

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/cockroachdb/errors"
)

// CFB8 以 8 位反馈模式驱动 AES 的流密码
//
// 每产生 1 字节密钥流就消耗 1 字节明文，反馈寄存器逐字节左移，
// 因此密钥流跨多次调用连续。标准库的 CFB 是整块反馈，与本协议不兼容。
//
// 状态可变且不可复制，由单个编码器/解码器独占；创建后不可重置。
type CFB8 struct {
	block    cipher.Block
	register []byte
	out      []byte
	decrypt  bool
}

var _ cipher.Stream = (*CFB8)(nil)

// NewCFB8 创建 CFB-8 流密码
//
// key 必须是 16 字节（AES-128），iv 必须等于块大小。decrypt 决定反馈
// 寄存器里存放的是密文输入还是密文输出，加解密两端各建一个。
func NewCFB8(key, iv []byte, decrypt bool) (*CFB8, error) {
	if len(key) != 16 {
		return nil, errors.Newf("crypto: key must be 16 bytes for AES-128, got %d bytes", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "crypto: failed to create AES cipher")
	}

	if len(iv) != block.BlockSize() {
		return nil, errors.Newf("crypto: iv must be %d bytes, got %d bytes", block.BlockSize(), len(iv))
	}

	c := &CFB8{
		block:    block,
		register: make([]byte, block.BlockSize()),
		out:      make([]byte, block.BlockSize()),
		decrypt:  decrypt,
	}
	copy(c.register, iv)
	return c, nil
}

// XORKeyStream 用密钥流加解密 src 写入 dst，dst 与 src 可以是同一切片
//
// len(dst) 必须不小于 len(src)，否则 panic。
func (c *CFB8) XORKeyStream(dst, src []byte) {
	n := len(c.register)
	for i := range src {
		c.block.Encrypt(c.out, c.register)

		in := src[i]
		out := in ^ c.out[0]

		copy(c.register, c.register[1:])
		if c.decrypt {
			c.register[n-1] = in
		} else {
			c.register[n-1] = out
		}

		dst[i] = out
	}
}
