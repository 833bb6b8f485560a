package main

import "github.com/cockroachdb/sheetcmp/cmd"

func main() {
	cmd.Execute()
}
