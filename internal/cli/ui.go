package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	errMark     = color.New(color.FgRed).Sprint("✗")
	successMark = color.New(color.FgGreen).Sprint("✓")
	infoColor   = color.New(color.FgCyan)
)

// Print error message in user-friendly format
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errMark, fmt.Sprintf(format, args...))
}

// Print success message
func printSuccess(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", successMark, fmt.Sprintf(format, args...))
}

// Print info message
func printInfo(format string, args ...interface{}) {
	fmt.Println(infoColor.Sprintf(format, args...))
}
