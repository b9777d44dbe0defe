// Package renderer formats attribution reports as markdown.
package renderer

import (
	"fmt"
	"io"

	"github.com/etnz/bondyield"
)

// title prints the report heading.
func title(w io.Writer, name string, rep *bondyield.Report) {
	fmt.Fprintf(w, "# %s from %s to %s\n\n", name, rep.Range().From, rep.Range().To)
	fmt.Fprintf(w, "Scope: %s\n\n", rep.Request.Scope)
}

func emptyNote(w io.Writer) {
	fmt.Fprintln(w, "_No instrument held in the range._")
}
