// Command moodctl runs operator tasks against the mood tracker database.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "moodctl:", err)
		os.Exit(1)
	}
}
