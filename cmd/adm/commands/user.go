package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pageza/renewals/backend/internal/models"
	"github.com/pageza/renewals/backend/internal/types"
)

// UserStore is the part of the user service the commands need
type UserStore interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	CreateUser(ctx context.Context, req *types.CreateUserRequest) (*models.User, error)
	SetPassword(ctx context.Context, username, password string) error
}

// UserCommands returns the user management commands
func UserCommands(users UserStore) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
		Long: `User management commands.

Available commands:
  list          - List all users
  create        - Create a user
  set-password  - Replace a user's password`,
	}

	userCmd.AddCommand(listCmd(users))
	userCmd.AddCommand(createCmd(users))
	userCmd.AddCommand(setPasswordCmd(users))
	return userCmd
}

func listCmd(users UserStore) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, err := users.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(all) == 0 {
				fmt.Fprintln(out, "No users found")
				return nil
			}
			for _, u := range all {
				fmt.Fprintf(out, "%-36s  %-20s  %s\n", u.ID, u.Username, u.CreatedAt.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func createCmd(users UserStore) *cobra.Command {
	return &cobra.Command{
		Use:   "create <username>",
		Short: "Create a user; the password is read from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd.InOrStdin())
			if err != nil {
				return err
			}
			user, err := users.CreateUser(cmd.Context(), &types.CreateUserRequest{Username: args[0], Password: password})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", user.Username, user.ID)
			return nil
		},
	}
}

func setPasswordCmd(users UserStore) *cobra.Command {
	return &cobra.Command{
		Use:   "set-password <username>",
		Short: "Replace a user's password; the new password is read from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := users.SetPassword(cmd.Context(), args[0], password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password updated for %s\n", args[0])
			return nil
		},
	}
}

// MinPasswordLength matches the HTTP user API
const MinPasswordLength = 6

func readPassword(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return password, nil
}
