package main

import "github.com/OpenTraceLab/OpenTraceBIM/cmd/otb/cmd"

func main() {
	cmd.Execute()
}
