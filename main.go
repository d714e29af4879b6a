package main

import (
	"fmt"
	"os"

	"nmorand/spendsight/cmd/analyze"
	"nmorand/spendsight/cmd/enhance"
	"nmorand/spendsight/cmd/root"
	"nmorand/spendsight/cmd/sample"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(enhance.Cmd)
	root.Cmd.AddCommand(sample.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
