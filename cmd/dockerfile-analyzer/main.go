package main

import "dockerfile-analyzer/internal/cli"

func main() {
	cli.Execute()
}
