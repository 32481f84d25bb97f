/*package tabular contains code for inspecting, evaluating, and converting the
two dimensional property tables used by thermophysical models.*/
package main

import (
	"fmt"
	"os"

	"github.com/phil-mansfield/tabular/cmd"
)

func main() {
	root := cmd.NewRootCmd()
	if err := root.Execute(); err != nil {
		mode := "tabular"
		if c, _, ferr := root.Find(os.Args[1:]); ferr == nil && c != root {
			mode = c.Name()
		}
		fmt.Fprintf(os.Stderr, "Error running mode %s:\n%s\n", mode, err.Error())
		os.Exit(1)
	}
}
