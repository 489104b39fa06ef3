package main

import "github.com/martinmajer/mechanika/cmd"

func main() {
	cmd.Execute()
}
