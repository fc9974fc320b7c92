/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/bcallard/smfdump/cmd/smfdump/cmd"

func main() {
	cmd.Execute()
}
