package main

import "github.com/tsawler/traprange/internal/cli"

func main() {
	cli.Execute()
}
