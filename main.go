package main

import "github.com/notargets/mimetic/cmd"

func main() {
	cmd.Execute()
}
