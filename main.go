package main

import "github.com/gwtool/gwt/cmd"

func main() {
	cmd.Execute()
}
