package main

import "github.com/theirongolddev/cfohelper/cmd"

func main() {
	cmd.Execute()
}
