// Command hospitalctl administers the hospital directory database.
//
//	hospitalctl migrate            # apply pending migrations
//	hospitalctl migrate --status   # list applied migrations
//	hospitalctl seed               # load the built-in sample hospitals
//	hospitalctl seed --file h.yaml --reset
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
