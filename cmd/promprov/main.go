package main

import (
	"github.com/promstack/provisioner/pkg/cli"
)

func main() {
	cli.Execute()
}
