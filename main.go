package main

import "git.thinkinpower.net/bindb/cli"

func main() {
	cli.Execute()
}
