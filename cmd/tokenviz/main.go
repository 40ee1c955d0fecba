package main

import "github.com/philipparndt/tokenviz/cmd"

func main() {
	cmd.Execute()
}
