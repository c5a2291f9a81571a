package main

import "github.com/edgeflare/tastebud/cmd/tastebud"

func main() {
	tastebud.Main()
}
