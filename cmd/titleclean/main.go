package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/titleclean/pkg/connector/registry"
	"github.com/ajitpratap0/titleclean/pkg/errors"
	"github.com/ajitpratap0/titleclean/pkg/logger"

	// Register every table format
	_ "github.com/ajitpratap0/titleclean/pkg/connector/destinations"
	_ "github.com/ajitpratap0/titleclean/pkg/connector/sources"
)

var version = "0.1.0"

func main() {
	err := newRootCmd().Execute()
	_ = logger.Sync()
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "titleclean",
		Short: "titleclean - Netflix titles dataset cleaner",
		Long: `titleclean loads the Netflix titles export, applies a fixed sequence of
cleaning stages and writes the cleaned table together with a plain-text
summary of every action taken.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newProfileCmd())
	root.AddCommand(newConfigCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "titleclean v%s\n", version)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List supported table formats",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Input formats:")
			for _, format := range registry.ListSources() {
				fmt.Fprintf(out, "  - %s\n", format)
			}
			fmt.Fprintln(out, "\nOutput formats:")
			for _, format := range registry.ListDestinations() {
				fmt.Fprintf(out, "  - %s\n", format)
			}
		},
	}
}

// reportError prints err for a person at a terminal. A missing file gets
// a one-line message naming the path that was tried.
func reportError(w io.Writer, err error) {
	var e *errors.Error
	if stderrors.As(err, &e) && e.Type == errors.ErrorTypeNotFound {
		if path, ok := e.Details["path"]; ok {
			fmt.Fprintf(w, "ERROR: %s at %v\n", e.Message, path)
			return
		}
	}
	fmt.Fprintf(w, "ERROR: %v\n", err)
}
