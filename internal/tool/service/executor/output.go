package executor

import (
	"bytes"

	"github.com/Cyclone1070/sandboxagent/internal/tool/helper/content"
)

const binarySampleSize = 8000

// collector captures command output with size limits and binary content detection.
type collector struct {
	buffer    bytes.Buffer
	maxBytes  int
	truncated bool
	isBinary  bool

	bytesChecked int
	sampleSize   int
}

func newCollector(maxBytes int, sampleSize int) *collector {
	return &collector{
		maxBytes:   maxBytes,
		sampleSize: sampleSize,
	}
}

// Write never fails so the child is never blocked on a full pipe.
func (c *collector) Write(p []byte) (int, error) {
	if c.isBinary {
		return len(p), nil
	}

	if c.bytesChecked < c.sampleSize {
		sample := p[:min(len(p), c.sampleSize-c.bytesChecked)]
		if content.IsBinaryContent(sample) {
			c.isBinary = true
			c.truncated = true
			return len(p), nil
		}
		c.bytesChecked += len(sample)
	}

	room := c.maxBytes - c.buffer.Len()
	if room <= 0 {
		c.truncated = true
		return len(p), nil
	}

	chunk := p
	if len(chunk) > room {
		chunk = chunk[:room]
		c.truncated = true
	}
	c.buffer.Write(chunk)

	return len(p), nil
}

func (c *collector) String() string {
	if c.isBinary {
		return "[Binary Content]"
	}
	return c.buffer.String()
}

func (c *collector) Truncated() bool {
	return c.truncated
}
