// Package codec provides compression and decompression for dataset objects.
package codec

import "io"

// Codec provides compression and decompression functionality.
type Codec interface {
	// Name returns the codec name used in flags and config ("none", "gzip", "zstd").
	Name() string
	// Reader wraps r to decompress data read from it.
	Reader(r io.Reader) (io.ReadCloser, error)
	// Writer wraps w to compress data written to it.
	Writer(w io.Writer) (io.WriteCloser, error)
	// Extension returns the file extension without dot (e.g., "zst", "gz").
	// Returns empty string for no compression.
	Extension() string
}

// ObjectName returns name with the codec's extension appended.
func ObjectName(name string, c Codec) string {
	if ext := c.Extension(); ext != "" {
		return name + "." + ext
	}
	return name
}
