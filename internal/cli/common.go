// Package cli contains the cobra commands of the armazem client.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	cliadapter "github.com/example/armazem/internal/adapters/cli"
	"github.com/example/armazem/internal/app"
	"github.com/example/armazem/internal/core/apperr"
	"github.com/example/armazem/internal/ctxutil"
	"github.com/example/armazem/internal/wire"
)

// ErrReported marks an error already shown to the user; main only sets the exit code.
var ErrReported = errors.New("reported")

// commandContext returns the invocation context tagged with a correlation id
// sent as X-Request-ID on every request of this command. The id is created
// once and kept on cmd.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if ctxutil.RequestIDFromContext(ctx) != "" {
		return ctx
	}
	ctx = ctxutil.WithRequestID(ctx, uuid.NewString())
	cmd.SetContext(ctx)
	return ctx
}

// report prints err on stderr the way the user should see it and returns ErrReported.
func report(cmd *cobra.Command, err error, fallback string) error {
	out := cmd.ErrOrStderr()
	cliadapter.RenderError(out, err, fallback)
	if errors.Is(err, apperr.ErrNotAuthenticated) {
		fmt.Fprintln(out, "  Inicie sessão com: armazem login --email <email>")
	}
	return fmt.Errorf("%w: %v", ErrReported, err)
}

// reportSaved prints msg when the backend accepted the change, then reports
// any error. A failed re-fetch after an accepted change is not a failed save.
func reportSaved(cmd *cobra.Command, msg string, err error, fallback string) error {
	if msg != "" {
		success(cmd, "%s", msg)
		if err != nil {
			return report(cmd, err, app.MsgLoadFailed)
		}
		return nil
	}
	if err != nil {
		return report(cmd, err, fallback)
	}
	return nil
}

// requireSession fails without a request when no usable session is stored.
func requireSession(ctx context.Context) error {
	sess, err := wire.AuthService().Restore(ctx)
	if err != nil {
		return err
	}
	if sess == nil {
		return apperr.ErrNotAuthenticated
	}
	return nil
}

// success prints a confirmation line.
func success(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.New(color.FgGreen).Sprint("✓"), fmt.Sprintf(format, args...))
}

// confirm asks a yes/no question on the command's input. Anything but
// y/yes/s/sim is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [s/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}

// readLine reads a single line, used for passwords not given as flags.
func readLine(in io.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
