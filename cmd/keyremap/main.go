package main

import "github.com/TanaroSch/keyremap/internal/cli"

const version = "0.1.0"

func main() {
	cli.Main(version)
}
