package main

import "github.com/dvoss/gitdeck/cmd"

func main() {
	cmd.Execute()
}
