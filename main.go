package main

import "github.com/itsviv0/Ai-gnu-unit-test-gen/cmd"

func main() {
	cmd.Execute()
}
