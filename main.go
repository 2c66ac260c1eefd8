package main

import "github.com/bgokden/pairset/cmd"

func main() {
	cmd.Execute()
}
