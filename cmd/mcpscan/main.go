// Package main is the entry point for the mcpscan CLI.
//
// mcpscan finds @tool, @prompt and @resource annotations in source files,
// validates them and reports which entities refer to each other. The
// commands themselves live in internal/cli.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"mcpscan/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.NewRoot(version).ExecuteContext(context.Background()); err != nil {
		var ee *cli.ExitError
		if errors.As(err, &ee) {
			if msg := ee.Message(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			os.Exit(ee.Code())
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
