package main

import "github.com/miosa/osa-grid/cmd"

func main() {
	cmd.Execute()
}
