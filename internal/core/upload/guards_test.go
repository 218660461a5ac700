package upload

import "testing"

func TestCanUpload(t *testing.T) {
	tests := []struct {
		name        string
		ctx         CandidateContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "small jpeg image is allowed",
			ctx:         CandidateContext{Kind: KindImage, MIME: "image/jpeg", Size: 200 * 1024},
			wantAllowed: true,
		},
		{
			name:        "image exactly at the ceiling is allowed",
			ctx:         CandidateContext{Kind: KindImage, MIME: "image/png", Size: 5 * 1024 * 1024},
			wantAllowed: true,
		},
		{
			name:       "6 MB jpeg is too large",
			ctx:        CandidateContext{Kind: KindImage, MIME: "image/jpeg", Size: 6 * 1024 * 1024},
			wantReason: "Ficheiro demasiado grande (máx. 5MB)",
		},
		{
			name:       "pdf is not an image",
			ctx:        CandidateContext{Kind: KindImage, MIME: "application/pdf", Size: 1024},
			wantReason: "Apenas ficheiros de imagem são permitidos",
		},
		{
			name:       "wrong type is reported before size",
			ctx:        CandidateContext{Kind: KindImage, MIME: "text/plain; charset=utf-8", Size: 50 * 1024 * 1024},
			wantReason: "Apenas ficheiros de imagem são permitidos",
		},
		{
			name:        "pdf document under 10 MB is allowed",
			ctx:         CandidateContext{Kind: KindDocument, MIME: "application/pdf", Size: 9 * 1024 * 1024},
			wantAllowed: true,
		},
		{
			name:       "11 MB pdf is too large",
			ctx:        CandidateContext{Kind: KindDocument, MIME: "application/pdf", Size: 11 * 1024 * 1024},
			wantReason: "Ficheiro demasiado grande (máx. 10MB)",
		},
		{
			name:       "image is not a document",
			ctx:        CandidateContext{Kind: KindDocument, MIME: "image/png", Size: 1024},
			wantReason: "Apenas ficheiros PDF são permitidos",
		},
		{
			name:       "unknown kind",
			ctx:        CandidateContext{Kind: "video", MIME: "video/mp4", Size: 1},
			wantReason: `unknown upload kind "video"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanUpload(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestMatchesClass(t *testing.T) {
	tests := []struct {
		kind Kind
		mime string
		want bool
	}{
		{KindImage, "image/gif", true},
		{KindImage, "IMAGE/PNG", true},
		{KindImage, "image/svg+xml; charset=utf-8", true},
		{KindImage, "application/octet-stream", false},
		{KindImage, "", false},
		{KindDocument, "application/pdf", true},
		{KindDocument, "application/pdf; charset=binary", true},
		{KindDocument, "application/x-pdf", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+" "+tt.mime, func(t *testing.T) {
			if got := MatchesClass(tt.kind, tt.mime); got != tt.want {
				t.Errorf("MatchesClass(%q, %q) = %v, want %v", tt.kind, tt.mime, got, tt.want)
			}
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	const origin = "https://armazem.example.com/"

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"root relative api path", "/api/uploads/abc.png", "https://armazem.example.com/api/uploads/abc.png"},
		{"absolute https", "https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"absolute http", "http://10.0.0.2/a.pdf", "http://10.0.0.2/a.pdf"},
		{"empty", "", ""},
		{"bare name kept", "abc.png", "abc.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeURL(origin, tt.url); got != tt.want {
				t.Errorf("NormalizeURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("/api/uploads/pdf/manual-123.pdf"); got != "manual-123.pdf" {
		t.Errorf("DisplayName() = %q", got)
	}
	if got := DisplayName("manual.pdf"); got != "manual.pdf" {
		t.Errorf("DisplayName() = %q", got)
	}
}

func TestGuardResult_Error(t *testing.T) {
	if err := (GuardResult{Allowed: true}).Error(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	err := GuardResult{Allowed: false, Reason: "nope"}.Error()
	if err == nil || err.Error() != "nope" {
		t.Errorf("unexpected error %v", err)
	}
}
