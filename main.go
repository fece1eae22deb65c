package main

import "github.com/deploymenttheory/go-blockidx/cmd"

func main() {
	cmd.Execute()
}
