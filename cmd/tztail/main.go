// Command tztail rewrites the timestamps in log lines into another timezone.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
