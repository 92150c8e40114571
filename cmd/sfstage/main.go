package main

import (
	"fmt"
	"os"

	"github.com/cadence-sf/sfstage/pkg/errors"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
			fmt.Fprintf(os.Stderr, "  code: %s\n", code)
		}
		os.Exit(1)
	}
}
