package main

import "shiftwatch/cmd"

func main() {
	cmd.Execute()
}
