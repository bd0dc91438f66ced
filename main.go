package main

import "github.com/theirongolddev/runway/cmd"

var version = "dev"

func main() {
	cmd.Version = version
	cmd.Execute()
}
