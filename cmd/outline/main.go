package main

import "github.com/mvp-joe/class-outline/internal/cli"

func main() {
	cli.Execute()
}
