package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"repocat/cmd"
	"repocat/pkg/logging"

	"golang.org/x/term"
)

func main() {
	err := cmd.Execute()
	syncLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[!] %v\n", err)
		os.Exit(cmd.ExitCode(err))
	}
}

// syncLogger flushes the logger when stderr can actually be synced.
func syncLogger() {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if syncErr := logging.Logger.Sync(); syncErr != nil {
		lowerErr := strings.ToLower(syncErr.Error())
		if !strings.Contains(lowerErr, "invalid argument") {
			log.Printf("Logger sync failed: %v", syncErr)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
