package main

import "planpipe/cmd"

func main() {
	cmd.Execute()
}
