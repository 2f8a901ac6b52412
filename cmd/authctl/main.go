// Command authctl performs operator tasks for the auth service: schema
// migration, key generation and credential debugging.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
