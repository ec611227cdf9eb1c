// Package errors provides examples of structured error handling in titleclean.
package errors_test

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/ajitpratap0/titleclean/pkg/errors"
)

// Example demonstrates basic error creation.
func Example() {
	err := errors.New(errors.ErrorTypeNotFound, "input file not found").
		WithDetail("path", "/data/netflix_titles.csv")

	fmt.Println(err.Error())

	// Output:
	// not_found: input file not found
}

// ExampleWrap shows how to wrap existing errors with context.
func ExampleWrap() {
	err := errors.Wrap(io.ErrUnexpectedEOF, errors.ErrorTypeData, "failed to parse CSV").
		WithDetail("line", 42)

	if errors.IsType(err, errors.ErrorTypeData) {
		fmt.Println("This is a data error")
	}

	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		fmt.Println("Original error was unexpected EOF")
	}

	// Output:
	// This is a data error
	// Original error was unexpected EOF
}

// ExampleNewf demonstrates formatted messages.
func ExampleNewf() {
	err := errors.Newf(errors.ErrorTypeConfig, "unsupported output format %q", "parquet")
	fmt.Println(err)

	// Output:
	// config: unsupported output format "parquet"
}

// ExampleDetail shows how callers read details back.
func ExampleDetail() {
	err := errors.New(errors.ErrorTypeNotFound, "input file not found").
		WithDetail("path", "netflix_titles.csv")

	if path, ok := errors.Detail(err, "path"); ok {
		fmt.Println(path)
	}

	// Output:
	// netflix_titles.csv
}
