package main

import (
	"os"

	"github.com/atriumhq/atrium-go/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
