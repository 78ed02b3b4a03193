package main

import "rootpatch/internal/cli"

func main() {
	cli.Execute()
}
