package main

import "github.com/philipparndt/gopoly/cmd"

func main() {
	cmd.Execute()
}
