// Command exprdemo is an illustrative driver over the expression engine:
// it exercises the registry -> checker -> runtime pipeline end to end
// from the command line, the way kokes-smda's cmd/ingest exercises its
// own upload pipeline end to end.
package main

import (
	"log"

	"github.com/exprengine/scalar/cmd/exprdemo/cmd"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	return cmd.Execute()
}
