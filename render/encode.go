package render

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"sync"
)

// bufferPool recycles encode buffers across export and clipboard calls.
// After warmup, repeated exports allocate no fresh buffers.
var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

func getBuffer() *bytes.Buffer {
	b := bufferPool.Get().(*bytes.Buffer)
	b.Reset()
	return b
}

func putBuffer(b *bytes.Buffer) {
	// Oversized buffers are dropped so one huge export does not pin memory.
	if b.Cap() > 16<<20 {
		return
	}
	bufferPool.Put(b)
}

// EncodePNG encodes the image as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := png.Encode(buf, img); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// EncodeJPEG encodes the image as JPEG bytes with the given quality (1-100).
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}
	buf := getBuffer()
	defer putBuffer(buf)

	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}
