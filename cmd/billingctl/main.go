package main

import "github.com/sangkips/galleauto-billing/internal/cli"

func main() {
	cli.Execute()
}
