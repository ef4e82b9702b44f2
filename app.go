package main

import "github.com/mkusano/daily-changelog/cmd"

func main() {
	cmd.Run()
}
