package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/armazem/internal/adapters/cli"
	"github.com/example/armazem/internal/core/form"
	"github.com/example/armazem/internal/wire"
)

const clearFlag = "clear"

// flagName maps a wire field name to its flag ("data_aquisicao" -> "data-aquisicao").
func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

// registerFormFlags adds one flag per field of template. Upload fields also
// get a "<field>-file" flag taking a local path.
func registerFormFlags(cmd *cobra.Command, template form.Form) {
	flags := cmd.Flags()
	for _, fld := range form.Fields(template) {
		name := flagName(fld.Name)
		usage := fieldUsage(fld)

		switch fld.Kind {
		case form.KindBool:
			def, _ := form.Get(template, fld.Name)
			b, _ := strconv.ParseBool(def)
			flags.Bool(name, b, usage)
		case form.KindUpload:
			flags.String(name, "", usage)
			flags.String(name+"-file", "", fmt.Sprintf("Local file to upload into %s", fld.Name))
		default:
			flags.String(name, "", usage)
		}
	}

	if hasUploads(template) {
		flags.StringSlice(clearFlag, nil, "Upload fields to clear (e.g. foto,manual_url)")
	}
}

func fieldUsage(fld form.Field) string {
	var b strings.Builder
	b.WriteString(strings.ReplaceAll(fld.Name, "_", " "))
	switch fld.Kind {
	case form.KindSelect:
		fmt.Fprintf(&b, " (%s)", strings.Join(fld.Options, "|"))
	case form.KindDate:
		b.WriteString(" (AAAA-MM-DD)")
	case form.KindRef:
		fmt.Fprintf(&b, " (id de %s)", fld.Ref)
	case form.KindUpload:
		b.WriteString(" (URL)")
	}
	if fld.Required {
		b.WriteString(", obrigatório")
	}
	return b.String()
}

func hasUploads(f form.Form) bool {
	for _, fld := range form.Fields(f) {
		if fld.Kind == form.KindUpload {
			return true
		}
	}
	return false
}

// applyFormFlags copies every flag the user set onto f. Unset flags keep
// the form's seeded value.
func applyFormFlags(cmd *cobra.Command, f form.Form) error {
	flags := cmd.Flags()
	for _, fld := range form.Fields(f) {
		name := flagName(fld.Name)
		if !flags.Changed(name) {
			continue
		}

		var value string
		if fld.Kind == form.KindBool {
			b, err := flags.GetBool(name)
			if err != nil {
				return err
			}
			value = strconv.FormatBool(b)
		} else {
			v, err := flags.GetString(name)
			if err != nil {
				return err
			}
			value = v
		}

		if err := form.Set(f, fld.Name, value); err != nil {
			return err
		}
	}
	return nil
}

// applyUploads clears the fields named by --clear, then uploads every
// "<field>-file" given, storing the returned URLs in f. The first failure
// stops before anything is submitted.
func applyUploads(ctx context.Context, cmd *cobra.Command, f form.Form) error {
	flags := cmd.Flags()
	svc := wire.UploadService()

	if flags.Lookup(clearFlag) != nil {
		fields, err := flags.GetStringSlice(clearFlag)
		if err != nil {
			return err
		}
		for _, field := range fields {
			if err := svc.Remove(f, strings.ReplaceAll(field, "-", "_")); err != nil {
				return err
			}
		}
	}

	for _, fld := range form.Fields(f) {
		if fld.Kind != form.KindUpload {
			continue
		}
		name := flagName(fld.Name) + "-file"
		if !flags.Changed(name) {
			continue
		}
		path, err := flags.GetString(name)
		if err != nil {
			return err
		}

		result, err := svc.UploadInto(ctx, f, fld.Name, path)
		if err != nil {
			return err
		}
		cliadapter.RenderUpload(cmd.OutOrStdout(), result)
	}
	return nil
}
