// groovybuild compiles, packages and documents a Groovy or Java project
// described by a project.star file.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
