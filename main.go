package main

import "github.com/theirongolddev/seventy/cmd"

func main() {
	cmd.Execute()
}
