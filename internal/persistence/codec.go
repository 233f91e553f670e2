package persistence

import (
	"bytes"

	"github.com/klauspost/compress/zstd"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Codec optionally compresses stored bytes. Decode accepts both compressed
// and plain input, so toggling compression keeps old saves readable.
type Codec struct {
	compress bool
	enc      *zstd.Encoder
	dec      *zstd.Decoder
}

// NewCodec returns a codec that compresses when compress is set.
func NewCodec(compress bool) (*Codec, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, err
	}
	return &Codec{compress: compress, enc: enc, dec: dec}, nil
}

// Encode prepares b for storage.
func (c *Codec) Encode(b []byte) []byte {
	if !c.compress {
		return b
	}
	return c.enc.EncodeAll(b, nil)
}

// Decode reverses Encode.
func (c *Codec) Decode(b []byte) ([]byte, error) {
	if !bytes.HasPrefix(b, zstdMagic) {
		return b, nil
	}
	return c.dec.DecodeAll(b, nil)
}

// Close releases the encoder and decoder.
func (c *Codec) Close() {
	c.enc.Close()
	c.dec.Close()
}
