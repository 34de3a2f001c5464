// pkg/pool/bytebuff/pool_valyala.go
// 基于 valyala/bytebufferpool 的适配实现
package bytebuff

import (
	"sync/atomic"

	"github.com/valyala/bytebufferpool"
)

// ValyalaPool 是基于 valyala/bytebufferpool 的适配池
// 与 Pool 相同的统计口径，底层使用 valyala 的自校准实现，
// 适合大小分布稳定的场景（如一次性 PacketWriter 的输出缓冲）
type ValyalaPool struct {
	pool *bytebufferpool.Pool

	// 统计信息
	gets   uint64
	puts   uint64
	misses uint64 // valyala 自动校准容量，misses 基本为零
}

// defaultValyalaPool 是默认的全局池
var defaultValyalaPool = NewValyalaPool()

// NewValyalaPool 创建一个新的基于 valyala 的 buffer pool
func NewValyalaPool() *ValyalaPool {
	return &ValyalaPool{
		pool: &bytebufferpool.Pool{},
	}
}

// Get 从池中获取一个 ByteBuffer
// ByteBuffer 直接暴露底层 []byte，零拷贝取出内容
func (p *ValyalaPool) Get() *bytebufferpool.ByteBuffer {
	atomic.AddUint64(&p.gets, 1)
	return p.pool.Get()
}

// Put 将 ByteBuffer 归还到池中
func (p *ValyalaPool) Put(buf *bytebufferpool.ByteBuffer) {
	if buf == nil {
		return
	}

	atomic.AddUint64(&p.puts, 1)
	p.pool.Put(buf)
}

// Stats 返回池的统计信息
func (p *ValyalaPool) Stats() (gets, puts, misses uint64) {
	return atomic.LoadUint64(&p.gets),
		atomic.LoadUint64(&p.puts),
		atomic.LoadUint64(&p.misses)
}

// --- 全局便捷函数 ---

// GetValyala 从默认 valyala 池中获取一个 ByteBuffer
func GetValyala() *bytebufferpool.ByteBuffer {
	return defaultValyalaPool.Get()
}

// PutValyala 将 ByteBuffer 归还到默认 valyala 池中
func PutValyala(buf *bytebufferpool.ByteBuffer) {
	defaultValyalaPool.Put(buf)
}

// ValyalaStats 返回默认 valyala 池的统计信息
func ValyalaStats() (gets, puts, misses uint64) {
	return defaultValyalaPool.Stats()
}
