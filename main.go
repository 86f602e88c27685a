package main

import "github.com/KaramelBytes/creaturestats-cli/cmd"

func main() {
	cmd.Execute()
}
