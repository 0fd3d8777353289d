package ui

import (
	"fmt"
	"io"
)

func PrintSuccess(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", SuccessBadge.Render("OK"), msg)
}

func PrintWarning(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", WarningBadge.Render("WARN"), msg)
}

func PrintError(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", ErrorBadge.Render("ERROR"), msg)
}
