// Command lightbnb runs the LightBnB data layer from the command line:
// schema migrations, user accounts, reservations and property listings.
//
// Configuration comes from LIGHTBNB_* environment variables (and a .env
// file, if present). Results are printed to stdout as JSON; logs go to stderr.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/lib/utils"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		reportError(err)
		stop()
		os.Exit(1)
	}
}

// reportError prints structured errors as JSON and anything else as text.
func reportError(err error) {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		if utils.PrintJSON(os.Stderr, appErr) == nil {
			return
		}
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
}
