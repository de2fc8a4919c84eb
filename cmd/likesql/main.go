// Command likesql prints the DDL statements likesql builds, for use in
// migrations or to review a schema file before applying it.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
