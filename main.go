package main

import "github.com/Alturino/nebula/cmd"

func main() {
	cmd.Start()
}
