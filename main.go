package main

import "listing-media/cmd"

func main() {
	cmd.Execute()
}
