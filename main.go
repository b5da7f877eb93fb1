package main

import "github.com/notargets/exodeck/cmd"

func main() {
	cmd.Execute()
}
