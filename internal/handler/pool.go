package handler

import (
	"bytes"
	"sync"
)

// initialBufferSize fits a summary response; full snapshot series grow the buffer
const initialBufferSize = 4096

// bufferPool is a pool of bytes.Buffer to reduce allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, initialBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// putBuffer resets the buffer and returns it to the pool.
// Buffers grown past maxPooledBufferSize by long runs are dropped.
func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}

const maxPooledBufferSize = 1 << 20
