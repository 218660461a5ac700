// Package upload contains the pure rules of the file upload widget.
// Guards are pure functions that evaluate preconditions without side effects.
package upload

import (
	"fmt"
	"strings"
)

// Kind selects the accepted file class.
type Kind string

const (
	KindImage    Kind = "image"
	KindDocument Kind = "document"
)

const megabyte = 1024 * 1024

// Rules describes what a kind accepts and where it is sent.
type Rules struct {
	Kind        Kind
	MaxBytes    int64
	Endpoint    string
	TypeMessage string
	SizeMessage string
	FailMessage string
	DoneMessage string
}

var rules = map[Kind]Rules{
	KindImage: {
		Kind:        KindImage,
		MaxBytes:    5 * megabyte,
		Endpoint:    "/upload",
		TypeMessage: "Apenas ficheiros de imagem são permitidos",
		SizeMessage: "Ficheiro demasiado grande (máx. 5MB)",
		FailMessage: "Erro ao carregar imagem",
		DoneMessage: "Imagem carregada com sucesso",
	},
	KindDocument: {
		Kind:        KindDocument,
		MaxBytes:    10 * megabyte,
		Endpoint:    "/upload/pdf",
		TypeMessage: "Apenas ficheiros PDF são permitidos",
		SizeMessage: "Ficheiro demasiado grande (máx. 10MB)",
		FailMessage: "Erro ao carregar PDF",
		DoneMessage: "PDF carregado com sucesso",
	},
}

// RulesFor returns the rules of kind.
func RulesFor(kind Kind) (Rules, error) {
	r, ok := rules[kind]
	if !ok {
		return Rules{}, fmt.Errorf("unknown upload kind %q", kind)
	}
	return r, nil
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CandidateContext describes a locally selected file.
type CandidateContext struct {
	Kind Kind
	MIME string // media type, parameters allowed ("image/png; charset=binary")
	Size int64
}

// CanUpload evaluates whether a selected file may be sent.
// Rules:
// - The media type must belong to the kind's class (image/* or application/pdf)
// - The size must not exceed the kind's ceiling
// The type is checked first, so an oversized file of the wrong type reports the type.
func CanUpload(ctx CandidateContext) GuardResult {
	r, err := RulesFor(ctx.Kind)
	if err != nil {
		return GuardResult{Allowed: false, Reason: err.Error()}
	}

	if !MatchesClass(ctx.Kind, ctx.MIME) {
		return GuardResult{Allowed: false, Reason: r.TypeMessage}
	}

	if ctx.Size > r.MaxBytes {
		return GuardResult{Allowed: false, Reason: r.SizeMessage}
	}

	return GuardResult{Allowed: true}
}

// MatchesClass reports whether mime belongs to the class accepted by kind.
func MatchesClass(kind Kind, mime string) bool {
	base := strings.ToLower(strings.TrimSpace(mime))
	if i := strings.IndexByte(base, ';'); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}

	switch kind {
	case KindImage:
		return strings.HasPrefix(base, "image/")
	case KindDocument:
		return base == "application/pdf"
	}
	return false
}

// NormalizeURL turns the url returned by the upload endpoint into one usable
// as an image or link source. Absolute URLs are kept, root-relative ones
// ("/api/uploads/x.png") are joined with origin, anything else is returned unchanged.
func NormalizeURL(origin, url string) string {
	switch {
	case url == "":
		return ""
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		return url
	case strings.HasPrefix(url, "/"):
		return strings.TrimRight(origin, "/") + url
	default:
		return url
	}
}

// DisplayName returns the last path segment of a stored URL, as the PDF widget shows it.
func DisplayName(url string) string {
	if i := strings.LastIndexByte(url, '/'); i >= 0 {
		return url[i+1:]
	}
	return url
}
