package gcsstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"cloud.google.com/go/storage"

	"github.com/discochess/evict/internal/codec/gzipcodec"
	"github.com/discochess/evict/internal/codec/noopcodec"
	"github.com/discochess/evict/internal/store"
)

// fakeBucket serves objects from memory through an openFunc.
func fakeBucket(objects map[string][]byte) openFunc {
	return func(ctx context.Context, key string) (io.ReadCloser, error) {
		data, ok := objects[key]
		if !ok {
			return nil, storage.ErrObjectNotExist
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}
}

func TestWithPrefix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"prefix", "prefix/"},
		{"prefix/", "prefix/"},
		{"a/b/c/", "a/b/c/"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := &Store{}
			WithPrefix(tt.input)(s)
			if s.prefix != tt.want {
				t.Errorf("prefix = %q, want %q", s.prefix, tt.want)
			}
		})
	}
}

func TestStore_objectKey(t *testing.T) {
	s := &Store{codec: gzipcodec.New(), prefix: "datasets/"}
	if got := s.objectKey("names.csv"); got != "datasets/names.csv.gz" {
		t.Errorf("objectKey() = %q, want %q", got, "datasets/names.csv.gz")
	}
}

func TestStore_ReadObject(t *testing.T) {
	var compressed bytes.Buffer
	w, err := gzipcodec.New().Writer(&compressed)
	if err != nil {
		t.Fatalf("Writer() error = %v", err)
	}
	w.Write([]byte("a,b\n1,2\n"))
	w.Close()

	s := &Store{
		open:   fakeBucket(map[string][]byte{"v1/names.csv.gz": compressed.Bytes()}),
		prefix: "v1/",
		codec:  gzipcodec.New(),
	}

	got, err := s.ReadObject(context.Background(), "names.csv")
	if err != nil {
		t.Fatalf("ReadObject() error = %v", err)
	}
	if string(got) != "a,b\n1,2\n" {
		t.Errorf("ReadObject() = %q, want %q", got, "a,b\n1,2\n")
	}
}

func TestStore_ReadObjectNotFound(t *testing.T) {
	s := &Store{open: fakeBucket(nil), codec: noopcodec.New()}

	_, err := s.ReadObject(context.Background(), "missing.csv")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("ReadObject() error = %v, want ErrNotFound", err)
	}
}

func TestStore_Close(t *testing.T) {
	s := &Store{}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
