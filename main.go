package main

import (
	"os"

	"lake-demo/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
