package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskdeck/internal/app"
	"taskdeck/internal/usecase"
)

// newLoginCommand creates the login command.
func newLoginCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Email      string
		Password   string
		RememberMe bool
	}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the task server",
		Long: `Log in to the task server and persist the session.

The password can be passed with --password or entered on stdin when
the flag is omitted.

Examples:
  # Log in with a password prompt
  taskdeck login --email admin@example.com

  # Keep the session across restarts
  taskdeck login --email admin@example.com --remember`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password := opts.Password
			if password == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			uc := c.LoginUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.LoginInput{
				Email:      opts.Email,
				Password:   password,
				RememberMe: opts.RememberMe,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", out.User.Username, out.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&opts.Password, "password", "", "Account password (prompted when omitted)")
	cmd.Flags().BoolVar(&opts.RememberMe, "remember", false, "Persist the session across restarts")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

// newRegisterCommand creates the register command.
func newRegisterCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Email      string
		Username   string
		Password   string
		FirstName  string
		LastName   string
		Phone      string
		Department string
	}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account on the task server. On success the new account
is logged in immediately.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.RegisterUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.RegisterInput{
				Email:           opts.Email,
				Username:        opts.Username,
				Password:        opts.Password,
				ConfirmPassword: opts.Password,
				FirstName:       opts.FirstName,
				LastName:        opts.LastName,
				Phone:           opts.Phone,
				Department:      opts.Department,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s\n", out.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&opts.Username, "username", "", "Account username (required)")
	cmd.Flags().StringVar(&opts.Password, "password", "", "Account password (required)")
	cmd.Flags().StringVar(&opts.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&opts.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&opts.Department, "department", "", "Department")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// newLogoutCommand creates the logout command.
func newLogoutCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the stored session",
		Long: `Log out from the task server.

The server is notified best-effort; local session data is cleared even
when the server is unreachable.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.LogoutUseCase().Execute(cmd.Context())
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

// newWhoamiCommand creates the whoami command.
func newWhoamiCommand(c *app.Container) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user := c.Session.CurrentUser()
			if user == nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}

			if output != outputText {
				return writeStructured(cmd.OutOrStdout(), output, user)
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s\n", styleTitle.Render(user.FullName()))
			_, _ = fmt.Fprintf(w, "  Username:   %s\n", user.Username)
			_, _ = fmt.Fprintf(w, "  Email:      %s\n", user.Email)
			_, _ = fmt.Fprintf(w, "  Role:       %s\n", user.Role)
			if user.Department != "" {
				_, _ = fmt.Fprintf(w, "  Department: %s\n", user.Department)
			}
			if c.Session.ShouldRefreshToken() {
				_, _ = fmt.Fprintln(w, styleDim.Render("  Token is close to expiry; it will refresh on next use."))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text, json or yaml")
	return cmd
}

// newRefreshCommand creates the refresh command.
func newRefreshCommand(c *app.Container) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the access token",
		Long: `Refresh the access token using the stored refresh token.

Without --force the refresh only runs when the token is close to
expiry.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.RefreshSessionUseCase().Execute(cmd.Context(), force)
			if err != nil {
				return err
			}
			if out.Refreshed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Token refreshed")
			} else {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Token still fresh; nothing to do")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Refresh even when the token is not close to expiry")
	return cmd
}
