package main

import "doc-browser/cmd"

func main() {
	cmd.Execute()
}
