package main

import (
	"github.com/unotown/unotown/internal/cli"
)

func main() {
	cli.Execute()
}
