package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/armazem/internal/adapters/cli"
	"github.com/example/armazem/internal/core/upload"
	"github.com/example/armazem/internal/ports/primary"
	"github.com/example/armazem/internal/wire"
)

// UploadsCmd returns the uploads command (local upload history).
func UploadsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "uploads",
		Short: "List files uploaded from this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := wire.UploadService().History(commandContext(cmd), limit)
			if err != nil {
				return err
			}
			cliadapter.RenderUploadHistory(cmd.OutOrStdout(), results)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of uploads to show")
	return cmd
}

// UploadCmd returns the upload command, which sends a single file and prints its URL.
func UploadCmd() *cobra.Command {
	var kind, contentType string

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a photo or PDF and print the stored URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			if err := requireSession(ctx); err != nil {
				return report(cmd, err, "")
			}

			k := upload.Kind(kind)
			rules, err := upload.RulesFor(k)
			if err != nil {
				return fmt.Errorf("invalid --kind: %w", err)
			}

			result, err := wire.UploadService().Upload(ctx, primary.UploadRequest{
				Kind:        k,
				Path:        args[0],
				ContentType: contentType,
			})
			if err != nil {
				return report(cmd, err, rules.FailMessage)
			}
			cliadapter.RenderUpload(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", string(upload.KindImage), "image or document")
	cmd.Flags().StringVar(&contentType, "content-type", "", "Override the detected content type")
	return cmd
}
