package config

import (
	"fmt"
	"io"
	"os"

	apperrors "github.com/louisbranch/sanity/internal/platform/errors"
)

// ExitErr writes "prefix: err" to stderr and exits with the code mapped from
// the error's domain code.
func ExitErr(prefix string, err error) {
	os.Exit(writeErr(os.Stderr, prefix, err))
}

func writeErr(w io.Writer, prefix string, err error) int {
	fmt.Fprintf(w, "%s: %v\n", prefix, err)
	return apperrors.CodeOf(err).ExitCode()
}
