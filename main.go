package main

import "github.com/furnitune/furnitune-api/cmd"

func main() {
	cmd.Execute()
}
