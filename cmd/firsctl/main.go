// Command firsctl is the operator CLI for a firsgate deployment. It reads the
// same configuration as the server and works on its key bundle, invoice
// index, and activity logs directly.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
