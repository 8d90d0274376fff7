package main

import "github.com/patrislav1/sankeygen/cmd"

func main() {
	cmd.Execute()
}
