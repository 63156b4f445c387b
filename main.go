package main

import (
	"github.com/dyike/widgetchat/internal/cli"
)

func main() {
	cli.Run()
}
