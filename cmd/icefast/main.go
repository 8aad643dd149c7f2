// Command icefast encrypts and decrypts data with the ICE block cipher.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := CLI().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "icefast: %v\n", err)
		os.Exit(1)
	}
}
