package cli

import (
	"fmt"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/example/armazem/internal/app"
	"github.com/example/armazem/internal/ports/primary"
	"github.com/example/armazem/internal/wire"
)

const (
	nameFlag     = "name"
	emailFlag    = "email"
	passwordFlag = "password"
)

var loginFlags = map[string]cobraflags.Flag{
	emailFlag: &cobraflags.StringFlag{
		Name:  emailFlag,
		Value: "",
		Usage: "Account email",
	},
	passwordFlag: &cobraflags.StringFlag{
		Name:  passwordFlag,
		Value: "",
		Usage: "Account password (prompted when omitted)",
	},
}

var registerFlags = map[string]cobraflags.Flag{
	nameFlag: &cobraflags.StringFlag{
		Name:  nameFlag,
		Value: "",
		Usage: "Full name",
	},
	emailFlag: &cobraflags.StringFlag{
		Name:  emailFlag,
		Value: "",
		Usage: "Account email",
	},
	passwordFlag: &cobraflags.StringFlag{
		Name:  passwordFlag,
		Value: "",
		Usage: "Password, at least 6 characters (prompted when omitted)",
	},
}

func passwordFrom(cmd *cobra.Command, flags map[string]cobraflags.Flag) (string, error) {
	if p := flags[passwordFlag].GetString(); p != "" {
		return p, nil
	}
	return readLine(cmd.InOrStdin(), cmd.ErrOrStderr(), "Palavra-passe: ")
}

// LoginCmd returns the login command.
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			password, err := passwordFrom(cmd, loginFlags)
			if err != nil {
				return err
			}

			sess, err := wire.AuthService().Login(ctx, primary.LoginRequest{
				Email:    loginFlags[emailFlag].GetString(),
				Password: password,
			})
			if err != nil {
				return report(cmd, err, app.MsgLoginFailed)
			}

			success(cmd, "Sessão iniciada como %s", displayUser(sess))
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, loginFlags)
	return cmd
}

// RegisterCmd returns the register command.
func RegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			password, err := passwordFrom(cmd, registerFlags)
			if err != nil {
				return err
			}

			sess, err := wire.AuthService().Register(ctx, primary.RegisterRequest{
				Name:     registerFlags[nameFlag].GetString(),
				Email:    registerFlags[emailFlag].GetString(),
				Password: password,
			})
			if err != nil {
				return report(cmd, err, app.MsgRegisterFailed)
			}

			success(cmd, "Conta criada. Sessão iniciada como %s", displayUser(sess))
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, registerFlags)
	return cmd
}

// LogoutCmd returns the logout command.
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.AuthService().Logout(commandContext(cmd)); err != nil {
				return err
			}
			success(cmd, "Sessão terminada")
			return nil
		},
	}
}

// WhoamiCmd returns the whoami command.
func WhoamiCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			out := cmd.OutOrStdout()

			sess, err := wire.AuthService().Restore(ctx)
			if err != nil {
				return err
			}
			if sess == nil {
				fmt.Fprintln(out, "Sem sessão iniciada.")
				return nil
			}

			user := sess.User
			if remote {
				me, err := wire.AuthService().Me(ctx)
				if err != nil {
					return report(cmd, err, "Erro ao obter utilizador")
				}
				user = *me
			}

			fmt.Fprintf(out, "Nome:   %s\n", user.Name)
			fmt.Fprintf(out, "Email:  %s\n", user.Email)
			if !sess.ExpiresAt.IsZero() {
				fmt.Fprintf(out, "Expira: %s\n", sess.ExpiresAt.Local().Format(time.DateTime))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "Ask the backend instead of using the stored user")
	return cmd
}

// ThemeCmd returns the theme command.
func ThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light]",
		Short:     "Show or set the theme preference",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{primary.ThemeDark, primary.ThemeLight},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			if len(args) == 0 {
				theme, err := wire.AuthService().Theme(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), theme)
				return nil
			}

			if err := wire.AuthService().SetTheme(ctx, args[0]); err != nil {
				return err
			}
			success(cmd, "Tema: %s", args[0])
			return nil
		},
	}
}

func displayUser(sess *primary.Session) string {
	if sess.User.Name != "" {
		return fmt.Sprintf("%s <%s>", sess.User.Name, sess.User.Email)
	}
	return sess.User.Email
}
