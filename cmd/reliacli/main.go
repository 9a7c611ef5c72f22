package main

import "github.com/Temi-Tory/IPM-Working-sub011/cmd/reliacli/cmd"

func main() {
	cmd.Execute()
}
