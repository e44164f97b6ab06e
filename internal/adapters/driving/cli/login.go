package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Sign in to the survey server",
	Long: `Sign in to the survey server with your enumerator account.

If a draft was saved while offline, it is synced immediately after a
successful login.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

var loginPassword string

func init() {
	loginCmd.Flags().StringVar(
		&loginPassword, "password", "", "Password (prompted securely when omitted)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	ctx := context.Background()
	reader := bufio.NewReader(cmd.InOrStdin())

	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		cmd.Print("Username: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read username: %w", err)
		}
		username = strings.TrimSpace(input)
	}
	if username == "" {
		return errors.New("username is required")
	}

	password := loginPassword
	if password == "" {
		var err error
		password, err = promptPassword(cmd, reader)
		if err != nil {
			return err
		}
	}
	if password == "" {
		return errors.New("password is required")
	}

	state, err := authService.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cmd.Printf("Logged in as %s.\n", username)
	printState(cmd, state)
	return nil
}

// promptPassword reads the password without echo when stdin is a terminal,
// falling back to a plain line read otherwise (tests, pipes).
func promptPassword(cmd *cobra.Command, reader *bufio.Reader) (string, error) {
	cmd.Print("Password: ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(input), nil
}
