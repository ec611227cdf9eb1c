// Package compressed opens and creates table files through the
// compression codec their configuration names.
package compressed

import (
	"bufio"
	stderrors "errors"
	"io"
	"os"

	"github.com/ajitpratap0/titleclean/pkg/compression"
	"github.com/ajitpratap0/titleclean/pkg/connector/core"
	"github.com/ajitpratap0/titleclean/pkg/errors"
)

const bufferSize = 64 * 1024

// Open opens the configured file for reading, decompressing if needed.
// A file that does not exist yields an ErrorTypeNotFound error.
func Open(config core.Config) (io.ReadCloser, error) {
	_, alg, err := config.Resolve()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(config.Path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(err, errors.ErrorTypeNotFound, "input file not found").
				WithDetail("path", config.Path)
		}
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open file").
			WithDetail("path", config.Path)
	}

	r, err := compression.NewReader(bufio.NewReaderSize(f, bufferSize), alg)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &readCloser{ReadCloser: r, file: f}, nil
}

// Create creates (or truncates) the configured file for writing,
// compressing if needed. Close flushes the codec and closes the file.
func Create(config core.Config) (io.WriteCloser, error) {
	_, alg, err := config.Resolve()
	if err != nil {
		return nil, err
	}
	level, err := config.CompressionLevel()
	if err != nil {
		return nil, err
	}

	f, err := os.Create(config.Path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to create file").
			WithDetail("path", config.Path)
	}

	buf := bufio.NewWriterSize(f, bufferSize)
	w, err := compression.NewWriter(buf, alg, level)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &writeCloser{WriteCloser: w, buf: buf, file: f}, nil
}

type readCloser struct {
	io.ReadCloser
	file *os.File
}

func (r *readCloser) Close() error {
	err := r.ReadCloser.Close()
	if cerr := r.file.Close(); err == nil {
		err = cerr
	}
	return err
}

type writeCloser struct {
	io.WriteCloser
	buf  *bufio.Writer
	file *os.File
}

// Close flushes every layer in order and always closes the file.
func (w *writeCloser) Close() error {
	err := w.WriteCloser.Close()
	if err == nil {
		err = w.buf.Flush()
	}
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to finish file").
			WithDetail("path", w.file.Name())
	}
	return nil
}
