package main

import "github.com/will-rowe/abundhist/cmd"

func main() {
	cmd.Execute()
}
