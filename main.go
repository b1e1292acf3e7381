package main

import "github.com/nexis-yamamoto/rappa/cmd"

func main() {
	cmd.Execute()
}
