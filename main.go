package main

import (
	"fmt"
	"os"

	"github.com/mevdschee/potx/cmd"
)

func main() {
	resp := cmd.Execute()
	if resp.Err == nil {
		return
	}

	// Standard exit code for SIGINT; the partial catalog has been saved.
	if resp.IsInterrupted() {
		os.Exit(130)
	}

	errOut := os.Stderr
	fmt.Fprintf(errOut, "ERROR: %s\n", resp.Err)
	if resp.IsUserError() && resp.Cmd != nil {
		fmt.Fprintln(errOut)
		fmt.Fprint(errOut, resp.Cmd.UsageString())
	}
	os.Exit(1)
}
