package main

import "github.com/marruca/snag/cmd"

func main() {
	cmd.Execute()
}
