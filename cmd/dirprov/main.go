package main

import (
	"fmt"
	"os"
)

var AppVersion string

func usage() {
	fmt.Fprintf(os.Stderr, `dirprov %s - directory account provisioning client

Usage:
  dirprov onboard  [flags]   Provision a directory account
  dirprov audit    [flags]   List recent provisioning outcomes
  dirprov hash-key [flags]   Hash an operator API key for the server config
`, AppVersion)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "onboard":
		err = runOnboard(os.Args[2:])
	case "audit":
		err = runAudit(os.Args[2:])
	case "hash-key":
		err = runHashKey(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
