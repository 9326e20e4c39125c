// Package main is the entry point of the CityReport command-line client.
//
// Usage:
//
//	cityreport                 # interactive shell
//	cityreport login -e me@example.org
//	cityreport reports list pothole --sort upvotes
//
// See --help for all commands.
package main

func main() {
	Execute()
}
