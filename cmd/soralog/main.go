// soralog - Sora server log query tool
//
// soralog normalizes the heterogeneous logs written by a Sora server into one
// record stream and queries it by field name.
package main

import (
	"os"

	"github.com/soralog/soralog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
