package main

import "github.com/KaramelBytes/didia-cli/cmd"

func main() {
	cmd.Execute()
}
