package main

import "github.com/ByLCY/lithos/cmd"

func main() {
	cmd.Execute()
}
