package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/example/armazem/internal/core/upload"
	"github.com/example/armazem/internal/ports/primary"
)

// RenderUpload reports an accepted upload.
func RenderUpload(out io.Writer, r *primary.UploadResult) {
	rules, err := upload.RulesFor(r.Kind)
	done := "Ficheiro carregado"
	if err == nil {
		done = rules.DoneMessage
	}
	fmt.Fprintf(out, "✓ %s: %s (%s)\n", done, r.FileName, humanize.IBytes(uint64(r.Size)))
	fmt.Fprintf(out, "  %s\n", r.URL)
}

// RenderUploadHistory lists recent uploads.
func RenderUploadHistory(out io.Writer, results []*primary.UploadResult) {
	RenderTable(out, results, []Column[*primary.UploadResult]{
		{"QUANDO", func(r *primary.UploadResult) string { return r.CreatedAt }},
		{"TIPO", func(r *primary.UploadResult) string { return string(r.Kind) }},
		{"FICHEIRO", func(r *primary.UploadResult) string { return r.FileName }},
		{"TAMANHO", func(r *primary.UploadResult) string { return humanize.IBytes(uint64(r.Size)) }},
		{"URL", func(r *primary.UploadResult) string { return r.URL }},
	}, "Nenhum ficheiro carregado.")
}
