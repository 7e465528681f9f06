package core

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// LargeObject is binary or character content that is streamed into a
// prepared statement at bind time. Content is either held in memory or read
// from Path.
type LargeObject struct {
	Path      string
	Character bool

	data []byte
}

// Open returns a reader over the object's content.
func (l *LargeObject) Open() (io.ReadCloser, error) {
	if l.Path == "" {
		return io.NopCloser(bytes.NewReader(l.data)), nil
	}
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("open large object %s: %w", l.Path, err)
	}
	return f, nil
}

// Resolve reads the content and returns it in the form drivers bind: string
// for character objects, []byte for binary ones. maxBytes <= 0 means no limit.
func (l *LargeObject) Resolve(maxBytes int64) (any, error) {
	r, err := l.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	src := io.Reader(r)
	if maxBytes > 0 {
		src = io.LimitReader(r, maxBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read large object: %w", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrLargeObjectTooBig, maxBytes)
	}
	if l.Character {
		return string(data), nil
	}
	return data, nil
}

func (l *LargeObject) String() string {
	kind := "blob"
	if l.Character {
		kind = "clob"
	}
	if l.Path != "" {
		return fmt.Sprintf("<%s %s>", kind, l.Path)
	}
	return fmt.Sprintf("<%s %d bytes>", kind, len(l.data))
}
