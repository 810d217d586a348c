package main

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/service"
	"github.com/spf13/cobra"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Look up, register and authenticate users",
	}

	cmd.AddCommand(newUsersGetCmd(), newUsersAddCmd(), newUsersLoginCmd())
	return cmd
}

func newUsersGetCmd() *cobra.Command {
	var (
		email string
		id    int64
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get a user by email or id",
		Args:  cobra.NoArgs,
		RunE: withServices(func(ctx context.Context, cmd *cobra.Command, s *service.Services) error {
			var (
				user *model.User
				err  error
			)
			if cmd.Flags().Changed("id") {
				user, err = s.Users.Get(ctx, id)
			} else {
				user, err = s.Users.GetByEmail(ctx, email)
			}
			if err != nil {
				return err
			}
			return printResult(cmd, user)
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "user email")
	cmd.Flags().Int64Var(&id, "id", 0, "user id")
	cmd.MarkFlagsMutuallyExclusive("email", "id")
	cmd.MarkFlagsOneRequired("email", "id")

	return cmd
}

func newUsersAddCmd() *cobra.Command {
	var input model.NewUser

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new user",
		Args:  cobra.NoArgs,
		RunE: withServices(func(ctx context.Context, cmd *cobra.Command, s *service.Services) error {
			user, err := s.Users.Register(ctx, input)
			if err != nil {
				return err
			}
			return printResult(cmd, user)
		}),
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "full name")
	cmd.Flags().StringVar(&input.Email, "email", "", "email address")
	cmd.Flags().StringVar(&input.Password, "password", "", "plain text password, stored as a bcrypt hash")
	for _, name := range []string{"name", "email", "password"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newUsersLoginCmd() *cobra.Command {
	var creds model.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check a user's email and password",
		Args:  cobra.NoArgs,
		RunE: withServices(func(ctx context.Context, cmd *cobra.Command, s *service.Services) error {
			user, err := s.Users.Login(ctx, creds)
			if err != nil {
				return err
			}
			return printResult(cmd, user)
		}),
	}

	cmd.Flags().StringVar(&creds.Email, "email", "", "email address")
	cmd.Flags().StringVar(&creds.Password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
