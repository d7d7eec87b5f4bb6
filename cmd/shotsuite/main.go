package main

import "github.com/aalvaropc/shotsuite/internal/cli"

func main() {
	cli.Execute()
}
