package main

import "github.com/Prajanya-g/videoSumarizer/internal/cli"

func main() {
	cli.Main()
}
