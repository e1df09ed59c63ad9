package parser

import (
	"bufio"
	"io"
	"strings"
	"sync"
)

const (
	scannerBufferSize    = 64 * 1024       // 64KB per scanner
	maxScannerBufferSize = 4 * 1024 * 1024 // 4MB max line
)

// scannerPool holds scanner buffers. Large generated headers put a whole
// bitmap array on one line, hence the generous maximum.
var scannerPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, scannerBufferSize)
		return &buf
	},
}

// builderPool holds the builders used to accumulate one declaration.
var builderPool = sync.Pool{
	New: func() interface{} {
		return new(strings.Builder)
	},
}

func acquireScannerBuffer() []byte {
	bufPtr, ok := scannerPool.Get().(*[]byte)
	if !ok {
		return make([]byte, 0, scannerBufferSize)
	}
	return (*bufPtr)[:0]
}

// releaseScannerBuffer returns buf to the pool unless it is too small to be
// useful or large enough to bloat the pool.
func releaseScannerBuffer(buf []byte) {
	if buf == nil || cap(buf) < scannerBufferSize/2 || cap(buf) > maxScannerBufferSize {
		return
	}
	buf = buf[:0]
	scannerPool.Put(&buf)
}

// createPooledScanner creates a scanner with a pooled buffer
func createPooledScanner(r io.Reader) (*bufio.Scanner, []byte) {
	scanner := bufio.NewScanner(r)
	buf := acquireScannerBuffer()
	scanner.Buffer(buf, maxScannerBufferSize)
	return scanner, buf
}

func acquireBuilder() *strings.Builder {
	b, ok := builderPool.Get().(*strings.Builder)
	if !ok {
		return new(strings.Builder)
	}
	b.Reset()
	return b
}

// releaseBuilder drops builders that grew past the scanner limit.
func releaseBuilder(b *strings.Builder) {
	if b == nil || b.Cap() > maxScannerBufferSize {
		return
	}
	b.Reset()
	builderPool.Put(b)
}
