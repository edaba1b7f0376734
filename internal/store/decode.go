package store

import (
	"fmt"
	"io"

	"github.com/discochess/evict/internal/codec"
)

// Decode reads r to the end through c's decompressor.
func Decode(r io.Reader, c codec.Codec) ([]byte, error) {
	decompressor, err := c.Reader(r)
	if err != nil {
		return nil, fmt.Errorf("creating decompressor: %w", err)
	}
	defer decompressor.Close()

	data, err := io.ReadAll(decompressor)
	if err != nil {
		return nil, fmt.Errorf("decompressing object: %w", err)
	}
	return data, nil
}
