package main

import "github.com/hushfile/hushfile-cli/cmd"

func main() {
	cmd.Execute()
}
