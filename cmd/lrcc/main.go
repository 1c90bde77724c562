package main

import (
	"fmt"
	"os"
)

func main() {
	code, err := Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(code)
}
