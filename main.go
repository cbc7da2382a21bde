package main

import "github.com/gaurav-prasanna/onepux/cmd"

func main() {
	cmd.Execute()
}
