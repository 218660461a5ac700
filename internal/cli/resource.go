package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/armazem/internal/adapters/cli"
	"github.com/example/armazem/internal/adapters/xlsx"
	"github.com/example/armazem/internal/app"
	"github.com/example/armazem/internal/core/apperr"
	"github.com/example/armazem/internal/wire"
)

// resourceCommand builds the list/show/create/update/delete commands of one
// collection. Update and delete are only added when the collection allows them.
type resourceCommand[R any] struct {
	Use     string
	Aliases []string
	Short   string
	Sheet   string // spreadsheet tab name for --export
	Empty   string // shown when the list is empty

	Def     func() app.ResourceDef[R]
	Columns func(label cliadapter.Labeler) []cliadapter.Column[R]

	// Page overrides wire.Page, for collections with extra actions.
	Page func() *app.Page[R]
}

func (rc resourceCommand[R]) page() *app.Page[R] {
	if rc.Page != nil {
		return rc.Page()
	}
	return wire.Page(rc.Def())
}

// load restores the session and fetches the page.
func (rc resourceCommand[R]) load(cmd *cobra.Command) (*app.Page[R], error) {
	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return nil, report(cmd, err, "")
	}
	p := rc.page()
	if err := p.Load(ctx); err != nil {
		return nil, report(cmd, err, app.MsgLoadFailed)
	}
	return p, nil
}

// Command returns the parent command with its subcommands.
func (rc resourceCommand[R]) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:     rc.Use,
		Aliases: rc.Aliases,
		Short:   rc.Short,
	}

	def := rc.Def()
	cmd.AddCommand(rc.listCmd())
	cmd.AddCommand(rc.showCmd())
	cmd.AddCommand(rc.createCmd())
	if def.FormFrom != nil {
		cmd.AddCommand(rc.updateCmd())
	}
	if def.Deletable {
		cmd.AddCommand(rc.deleteCmd())
	}
	if def.FormFrom != nil && hasUploads(def.NewForm()) {
		cmd.AddCommand(rc.attachCmd())
	}
	return cmd
}

func (rc resourceCommand[R]) listCmd() *cobra.Command {
	var search, export string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List " + rc.Use,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := rc.load(cmd)
			if err != nil {
				return err
			}

			items := p.Filter(search)
			cols := rc.Columns(p.LookupLabel)

			if export != "" {
				headers, rows := cliadapter.PlainRows(items, cols)
				if err := writeExport(export, rc.Sheet, headers, rows); err != nil {
					return err
				}
				success(cmd, "%d registos exportados para %s", len(rows), export)
				return nil
			}

			cliadapter.RenderTable(cmd.OutOrStdout(), items, cols, rc.Empty)
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive search term")
	cmd.Flags().StringVar(&export, "export", "", "Write the list to an .xlsx file instead")
	return cmd
}

func writeExport(path, sheet string, headers []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := xlsx.Write(f, sheet, headers, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (rc resourceCommand[R]) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := rc.load(cmd)
			if err != nil {
				return err
			}

			record, err := p.Get(args[0])
			if err != nil {
				return report(cmd, err, "")
			}

			def := rc.Def()
			if def.FormFrom != nil {
				cliadapter.RenderForm(cmd.OutOrStdout(), def.FormFrom(record), p.LookupLabel)
				return nil
			}
			cliadapter.RenderTable(cmd.OutOrStdout(), []R{record}, rc.Columns(p.LookupLabel), rc.Empty)
			return nil
		},
	}
}

func (rc resourceCommand[R]) createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := rc.load(cmd)
			if err != nil {
				return err
			}
			if _, err := p.OpenCreate(); err != nil {
				return report(cmd, err, "")
			}
			return rc.submit(cmd, p)
		},
	}
	registerFormFlags(cmd, rc.Def().NewForm())
	return cmd
}

func (rc resourceCommand[R]) updateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a record; only the flags given change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := rc.load(cmd)
			if err != nil {
				return err
			}
			if _, err := p.OpenEdit(args[0]); err != nil {
				return report(cmd, err, "")
			}
			return rc.submit(cmd, p)
		},
	}
	registerFormFlags(cmd, rc.Def().NewForm())
	return cmd
}

// submit applies the flags and uploads to the open form and sends it.
func (rc resourceCommand[R]) submit(cmd *cobra.Command, p *app.Page[R]) error {
	ctx := commandContext(cmd)
	f := p.Form()

	if err := applyFormFlags(cmd, f); err != nil {
		_ = p.CloseDialog()
		return report(cmd, err, "")
	}
	if err := applyUploads(ctx, cmd, f); err != nil {
		_ = p.CloseDialog()
		return report(cmd, err, "")
	}

	msg, err := p.Submit(ctx)
	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		cliadapter.RenderForm(cmd.ErrOrStderr(), f, p.LookupLabel)
	}
	return reportSaved(cmd, msg, err, app.MsgSaveFailed)
}

func (rc resourceCommand[R]) deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := rc.load(cmd)
			if err != nil {
				return err
			}
			if err := p.RequestDelete(args[0]); err != nil {
				return report(cmd, err, "")
			}

			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Eliminar %s?", args[0])) {
				_ = p.CancelDelete()
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelado.")
				return nil
			}

			msg, err := p.ConfirmDelete(commandContext(cmd))
			return reportSaved(cmd, msg, err, app.MsgDeleteFailed)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func (rc resourceCommand[R]) attachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attach <id> <field> <file>",
		Short: "Upload a file into a photo or document field of a record",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := rc.load(cmd)
			if err != nil {
				return err
			}
			f, err := p.OpenEdit(args[0])
			if err != nil {
				return report(cmd, err, "")
			}

			field := strings.ReplaceAll(args[1], "-", "_")
			result, err := wire.UploadService().UploadInto(commandContext(cmd), f, field, args[2])
			if err != nil {
				_ = p.CloseDialog()
				return report(cmd, err, "")
			}
			cliadapter.RenderUpload(cmd.OutOrStdout(), result)

			msg, err := p.Submit(commandContext(cmd))
			return reportSaved(cmd, msg, err, app.MsgSaveFailed)
		},
	}
}
