// Package codecs resolves codecs by name or file extension.
package codecs

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/discochess/evict/internal/codec"
	"github.com/discochess/evict/internal/codec/gzipcodec"
	"github.com/discochess/evict/internal/codec/noopcodec"
	"github.com/discochess/evict/internal/codec/zstdcodec"
)

// ErrUnknownCodec is returned for codec names that are not supported.
var ErrUnknownCodec = errors.New("codecs: unknown codec")

// Names lists the supported codec names.
func Names() []string {
	return []string{"none", "gzip", "zstd"}
}

// ByName returns the codec registered under name. The empty string
// selects no compression.
func ByName(name string) (codec.Codec, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return noopcodec.New(), nil
	case "gzip", "gz":
		return gzipcodec.New(), nil
	case "zstd", "zst":
		return zstdcodec.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}

// ForFile splits a file name into its uncompressed base name and the codec
// matching its extension, e.g. "names.csv.zst" -> ("names.csv", zstd).
// Files without a known compression extension use no compression.
func ForFile(name string) (string, codec.Codec) {
	switch path.Ext(name) {
	case ".zst":
		return strings.TrimSuffix(name, ".zst"), zstdcodec.New()
	case ".gz":
		return strings.TrimSuffix(name, ".gz"), gzipcodec.New()
	default:
		return name, noopcodec.New()
	}
}
