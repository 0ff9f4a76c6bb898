package main

import "genedb/cmd"

func main() {
	cmd.Execute()
}
