// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Command agestats queries an age statistics server and renders the results.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/xmidt-org/agestats"
	"go.uber.org/multierr"
)

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	errs := multierr.Errors(err)
	for _, e := range errs {
		fmt.Fprintln(stderr, "Error:", e)
	}

	return agestats.ExitCodeFor(errs[0])
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
