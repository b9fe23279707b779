package transport

import (
	"io"
)

// progressReader reports how far into the body the consumer has read. The SDK
// may rewind the body on retry, so only new high-water marks are reported.
type progressReader struct {
	r          io.ReadSeeker
	pos        int64
	reported   int64
	onProgress func(int64)
}

func newProgressReader(r io.ReadSeeker, onProgress func(int64)) *progressReader {
	if onProgress == nil {
		onProgress = func(int64) {}
	}
	return &progressReader{r: r, onProgress: onProgress}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.pos += int64(n)
		if p.pos > p.reported {
			p.reported = p.pos
			p.onProgress(p.reported)
		}
	}
	return n, err
}

func (p *progressReader) Seek(offset int64, whence int) (int64, error) {
	pos, err := p.r.Seek(offset, whence)
	if err == nil {
		p.pos = pos
	}
	return pos, err
}
