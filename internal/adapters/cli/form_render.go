package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/armazem/internal/core/apperr"
	"github.com/example/armazem/internal/core/form"
	"github.com/example/armazem/internal/core/upload"
)

// RenderForm prints every field of f with its current value. Foreign keys
// are rendered through label and document URLs by their file name.
func RenderForm(out io.Writer, f form.Form, label Labeler) {
	fmt.Fprintln(out, color.New(color.Bold).Sprint(f.Title()))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, fld := range form.Fields(f) {
		value, _ := form.Get(f, fld.Name)
		switch fld.Kind {
		case form.KindRef:
			if value != "" && label != nil {
				value = label("/"+fld.Ref, value)
			}
		case form.KindUpload:
			if fld.Upload == string(upload.KindDocument) && value != "" {
				value = upload.DisplayName(value)
			}
		}
		fmt.Fprintf(w, "  %s:\t%s\n", fld.Name, orDash(value))
	}
	w.Flush()
}

// RenderError prints err for the user. Validation problems are listed per
// field; backend failures show the backend's detail or fallback.
func RenderError(out io.Writer, err error, fallback string) {
	red := color.New(color.FgRed)

	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(out, red.Sprint("✗ Dados inválidos"))
		fields := make([]string, 0, len(verr.Fields))
		for f := range verr.Fields {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(out, "  %s: %s\n", f, strings.Join(verr.Fields[f], "; "))
		}
		return
	}

	fmt.Fprintf(out, "%s %s\n", red.Sprint("✗"), apperr.Message(err, fallback))
}
