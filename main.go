package main

import "conversion-bridge/cmd"

func main() {
	cmd.Execute()
}
