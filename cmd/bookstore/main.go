package main

import "github.com/safar/go-bookstore/internal/cmd"

func main() {
	cmd.Execute()
}
