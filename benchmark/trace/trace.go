// Package trace reads and generates cache access traces.
//
// A trace file holds one operation per line:
//
//	put <key> <value>
//	get <key>
//	remove <key>
//
// Blank lines and lines starting with '#' are ignored. A line containing
// only "---" ends one trace and starts the next.
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/discochess/evict/internal/codec/codecs"
)

// ErrSyntax indicates a malformed trace line.
var ErrSyntax = errors.New("trace: syntax error")

// Separator ends one trace and starts the next.
const Separator = "---"

// Kind is the type of a traced operation.
type Kind int

// Operation kinds.
const (
	Put Kind = iota
	Get
	Remove
)

func (k Kind) String() string {
	switch k {
	case Put:
		return "put"
	case Get:
		return "get"
	case Remove:
		return "remove"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Op is one cache operation.
type Op struct {
	Kind  Kind
	Key   string
	Value string // Only set for Put. Runs of spaces collapse to one.
}

func (o Op) String() string {
	if o.Kind == Put {
		return fmt.Sprintf("put %s %s", o.Key, o.Value)
	}
	return o.Kind.String() + " " + o.Key
}

// Trace is an ordered sequence of operations replayed against one cache.
type Trace []Op

// Keys returns the number of distinct keys in the trace.
func (t Trace) Keys() int {
	seen := make(map[string]struct{})
	for _, op := range t {
		seen[op.Key] = struct{}{}
	}
	return len(seen)
}

// Parse reads every trace from r. Empty traces are dropped.
func Parse(r io.Reader) ([]Trace, error) {
	var traces []Trace
	var current Trace

	scanner := bufio.NewScanner(r)
	// Increase buffer size for long lines.
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case line == Separator:
			if len(current) > 0 {
				traces = append(traces, current)
			}
			current = nil
			continue
		}

		op, err := parseOp(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		current = append(current, op)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}

	if len(current) > 0 {
		traces = append(traces, current)
	}
	return traces, nil
}

// ReadFile parses the trace file at path. Files ending in .zst or .gz are
// decompressed.
func ReadFile(path string) ([]Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	_, c := codecs.ForFile(filepath.Base(path))
	r, err := c.Reader(f)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer r.Close()

	traces, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return traces, nil
}

// Write encodes traces in the text format accepted by Parse.
func Write(w io.Writer, traces []Trace) error {
	bw := bufio.NewWriter(w)
	for i, t := range traces {
		if i > 0 {
			if _, err := bw.WriteString(Separator + "\n"); err != nil {
				return err
			}
		}
		for _, op := range t {
			if _, err := bw.WriteString(op.String() + "\n"); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func parseOp(line string) (Op, error) {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "put":
		if len(fields) < 3 {
			return Op{}, fmt.Errorf("%w: put wants a key and a value: %q", ErrSyntax, line)
		}
		return Op{Kind: Put, Key: fields[1], Value: strings.Join(fields[2:], " ")}, nil
	case "get":
		if len(fields) != 2 {
			return Op{}, fmt.Errorf("%w: get wants a key: %q", ErrSyntax, line)
		}
		return Op{Kind: Get, Key: fields[1]}, nil
	case "remove":
		if len(fields) != 2 {
			return Op{}, fmt.Errorf("%w: remove wants a key: %q", ErrSyntax, line)
		}
		return Op{Kind: Remove, Key: fields[1]}, nil
	default:
		return Op{}, fmt.Errorf("%w: unknown operation %q", ErrSyntax, fields[0])
	}
}
