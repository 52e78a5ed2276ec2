package samplefile

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/RyanBlaney/sonido-samples/algorithms/common"
)

// StdStream is the file name that selects the session's standard streams.
const StdStream = "-"

func isGzip(name string) bool {
	return len(name) > 3 && strings.HasSuffix(name, ".gz")
}

// source is an open samples stream for reading.
type source struct {
	*bufio.Reader
	closers []io.Closer
	stdin   bool
}

func (src *source) Close() error {
	var errs []error
	for i := len(src.closers) - 1; i >= 0; i-- {
		errs = append(errs, src.closers[i].Close())
	}
	return errors.Join(errs...)
}

// openSource opens name for reading. "-" reads the session stdin, a .gz
// suffix is decompressed on the fly.
func openSource(s *common.Session, name string) (*source, error) {
	if name == "" {
		return nil, ErrNoFileName
	}
	if name == StdStream {
		return &source{Reader: s.Stdin(), stdin: true}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("can not open samples file %s: %w", name, err)
	}
	if !isGzip(name) {
		return &source{Reader: bufio.NewReader(f), closers: []io.Closer{f}}, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("gzip problem, can not open samples file %s: %w", name, err)
	}
	return &source{Reader: bufio.NewReader(zr), closers: []io.Closer{f, zr}}, nil
}

// sink is an open samples stream for writing. Close flushes every layer.
type sink struct {
	*bufio.Writer
	closers []io.Closer
}

func (dst *sink) Close() error {
	errs := []error{dst.Flush()}
	for i := len(dst.closers) - 1; i >= 0; i-- {
		errs = append(errs, dst.closers[i].Close())
	}
	return errors.Join(errs...)
}

// openSink creates name for writing. "-" writes to the session stdout, a
// .gz suffix compresses at the given gzip level.
func openSink(s *common.Session, name string, level int) (*sink, error) {
	if name == "" {
		return nil, ErrNoFileName
	}
	if name == StdStream {
		return &sink{Writer: bufio.NewWriter(s.Stdout())}, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("can not write samples %s: %w", name, err)
	}
	if !isGzip(name) {
		return &sink{Writer: bufio.NewWriter(f), closers: []io.Closer{f}}, nil
	}
	zw, err := gzip.NewWriterLevel(f, level)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("gzip problem, can not open samples file %s: %w", name, err)
	}
	return &sink{Writer: bufio.NewWriter(zw), closers: []io.Closer{f, zw}}, nil
}
