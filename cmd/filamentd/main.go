// Package main is the entry point for the filamentd notification
// daemon.
package main

func main() {
	Execute()
}
