package main

import "sdramctl-go/cmd/sdramctl/cmd"

func main() {
	cmd.Execute()
}
