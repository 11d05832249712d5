// Package main is the entry point for the steamrec server.
package main

func main() {
	Execute()
}
