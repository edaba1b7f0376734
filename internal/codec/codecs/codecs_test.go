package codecs

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/discochess/evict/internal/codec"
)

func TestByName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantExt string
	}{
		{"", "none", ""},
		{"none", "none", ""},
		{"gzip", "gzip", "gz"},
		{"GZ", "gzip", "gz"},
		{"zstd", "zstd", "zst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ByName(tt.name)
			if err != nil {
				t.Fatalf("ByName(%q) error = %v", tt.name, err)
			}
			if c.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", c.Name(), tt.want)
			}
			if c.Extension() != tt.wantExt {
				t.Errorf("Extension() = %q, want %q", c.Extension(), tt.wantExt)
			}
		})
	}
}

func TestByName_Unknown(t *testing.T) {
	if _, err := ByName("brotli"); !errors.Is(err, ErrUnknownCodec) {
		t.Errorf("ByName(brotli) error = %v, want ErrUnknownCodec", err)
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		file      string
		wantBase  string
		wantCodec string
	}{
		{"names.csv", "names.csv", "none"},
		{"names.csv.gz", "names.csv", "gzip"},
		{"data/names.csv.zst", "data/names.csv", "zstd"},
	}

	for _, tt := range tests {
		base, c := ForFile(tt.file)
		if base != tt.wantBase || c.Name() != tt.wantCodec {
			t.Errorf("ForFile(%q) = %q, %s, want %q, %s", tt.file, base, c.Name(), tt.wantBase, tt.wantCodec)
		}
		if got := codec.ObjectName(base, c); got != tt.file {
			t.Errorf("ObjectName(%q) = %q, want %q", base, got, tt.file)
		}
	}
}

func TestCodecs_RoundTrip(t *testing.T) {
	original := []byte("Year,Gender,Ethnicity,Name,Count,Rank\n2016,FEMALE,ASIAN,Olivia,172,1\n")

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			c, err := ByName(name)
			if err != nil {
				t.Fatalf("ByName() error = %v", err)
			}

			var compressed bytes.Buffer
			w, err := c.Writer(&compressed)
			if err != nil {
				t.Fatalf("Writer() error = %v", err)
			}
			if _, err := w.Write(original); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			r, err := c.Reader(&compressed)
			if err != nil {
				t.Fatalf("Reader() error = %v", err)
			}
			defer r.Close()
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if !bytes.Equal(got, original) {
				t.Errorf("round trip = %q, want %q", got, original)
			}
		})
	}
}
