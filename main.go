package main

import "github.com/samsaffron/genko/cmd"

func main() {
	cmd.Execute()
}
