package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/folioreads/folio-admin/client"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage platform accounts",
	}
	cmd.AddCommand(userGetCmd())
	cmd.AddCommand(userStatusCmd())
	cmd.AddCommand(userGrantCmd())
	cmd.AddCommand(userRevokeCmd())
	cmd.AddCommand(userAuthorCmd())
	return cmd
}

func userGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <uid>",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			user, err := apiClient.Users.Get(context.Background(), args[0])
			if err != nil {
				fatal("user get", err)
			}
			output(user, user.Status)
		},
	}
}

func userStatusCmd() *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "status <uid> <active|suspended|disabled>",
		Short: "Set an account's standing",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			user, err := apiClient.Users.UpdateStatus(context.Background(), args[0], &client.UpdateUserStatusRequest{
				Status: args[1],
				Reason: reason,
			})
			if err != nil {
				fatal("user status", err)
			}
			output(user, user.Status)
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded in the audit log")
	return cmd
}

func userGrantCmd() *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "grant <uid> <admin|super_admin>",
		Short: "Grant an admin role",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			user, err := apiClient.Users.AssignRole(context.Background(), args[0], &client.AssignRoleRequest{
				Role:   args[1],
				Reason: reason,
			})
			if err != nil {
				fatal("user grant", err)
			}
			quiet := ""
			if user.Role != nil {
				quiet = *user.Role
			}
			output(user, quiet)
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded in the audit log")
	return cmd
}

func userRevokeCmd() *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "revoke <uid>",
		Short: "Revoke any admin role; the account reverts to a reader",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			user, err := apiClient.Users.RevokeRole(context.Background(), args[0], reason)
			if err != nil {
				fatal("user revoke", err)
			}
			output(user, user.UserType)
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded in the audit log")
	return cmd
}

func userAuthorCmd() *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "author <uid> <pending|approved|rejected|suspended>",
		Short: "Move an account through the author-approval workflow",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			user, err := apiClient.Users.UpdateAuthorStatus(context.Background(), args[0], &client.UpdateAuthorStatusRequest{
				Status: args[1],
				Reason: reason,
			})
			if err != nil {
				fatal("user author", err)
			}
			output(user, user.AuthorStatus)
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded in the audit log")
	return cmd
}
