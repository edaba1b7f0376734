// Package noopcodec stores objects uncompressed.
package noopcodec

import (
	"io"

	"github.com/discochess/evict/internal/codec"
)

var _ codec.Codec = Codec{}

// Codec passes bytes through unchanged. Like the compressing codecs, closing
// its reader or writer never closes the underlying stream; the caller owns it.
type Codec struct{}

// New returns the pass-through codec.
func New() Codec { return Codec{} }

func (Codec) Name() string      { return "none" }
func (Codec) Extension() string { return "" }

func (Codec) Reader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

func (Codec) Writer(w io.Writer) (io.WriteCloser, error) {
	return passthrough{w}, nil
}

type passthrough struct{ io.Writer }

func (passthrough) Close() error { return nil }
