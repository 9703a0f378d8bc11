package handler

import (
	"bytes"
	"sync"
)

// initialBufferSize fits a full 20x20 state document without regrowing
const initialBufferSize = 16 << 10

// bufferPool is a pool of bytes.Buffer to reduce allocations when encoding
// responses and reading request bodies
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, initialBufferSize))
	},
}

// getBuffer retrieves a buffer from the pool
func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// putBuffer resets the buffer and returns it to the pool.
// Oversized buffers are dropped so one huge request does not pin memory.
func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 4*initialBufferSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
