// Package main provides the gntaxdump CLI application.
package main

import "github.com/gnames/gntaxdump/cmd"

func main() {
	cmd.Execute()
}
