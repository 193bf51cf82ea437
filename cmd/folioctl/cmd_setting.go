package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/folioreads/folio-admin/client"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := apiClient.Health(context.Background())
			if err != nil {
				fatal("health", err)
			}
			output(resp, resp.Status)
		},
	}
}

func newSettingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setting",
		Short: "Manage versioned platform settings",
	}
	cmd.AddCommand(settingListCmd())
	cmd.AddCommand(settingGetCmd())
	cmd.AddCommand(settingSetCmd())
	cmd.AddCommand(settingRollbackCmd())
	cmd.AddCommand(settingHistoryCmd())
	return cmd
}

func settingListCmd() *cobra.Command {
	var category string
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List settings",
		Run: func(cmd *cobra.Command, args []string) {
			settings, hasMore, err := apiClient.Settings.List(context.Background(), &client.SettingListOptions{
				Category: category,
				Limit:    limit,
				Offset:   offset,
			})
			if err != nil {
				fatal("setting list", err)
			}
			if flagFmt == "table" {
				headers := []string{"KEY", "TYPE", "VALUE", "CATEGORY", "VERSION", "EDITABLE"}
				var rows [][]string
				for _, s := range settings {
					rows = append(rows, []string{
						s.Key, s.ValueType, truncate(string(s.Value), 40),
						s.Category, strconv.FormatInt(s.Version, 10), strconv.FormatBool(s.Editable),
					})
				}
				formatTable(headers, rows)
				if hasMore {
					fmt.Println("(more results available, use --offset)")
				}
				return
			}
			output(map[string]any{"settings": settings, "has_more": hasMore}, "")
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Pagination offset")
	return cmd
}

func settingGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Show a setting",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			setting, err := apiClient.Settings.Get(context.Background(), args[0])
			if err != nil {
				fatal("setting get", err)
			}
			output(setting, string(setting.Value))
		},
	}
}

func settingSetCmd() *cobra.Command {
	var valueType, reason string
	var expectedVersion int64
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Update a setting value",
		Long: "Update a setting value. The value is a JSON document matching the\n" +
			"declared type; pass --expected-version from a prior get to fail fast\n" +
			"if someone else changed the setting in the meantime.",
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			change, err := apiClient.Settings.Update(context.Background(), args[0], &client.UpdateSettingRequest{
				Value:           json.RawMessage(args[1]),
				ValueType:       valueType,
				ExpectedVersion: expectedVersion,
				Reason:          reason,
			})
			if err != nil {
				fatal("setting set", err)
			}
			output(change, strconv.FormatInt(change.VersionAfter, 10))
		},
	}
	cmd.Flags().StringVar(&valueType, "type", "string", "Value type: string|number|boolean|json")
	cmd.Flags().Int64Var(&expectedVersion, "expected-version", 0, "Version from last read (0 skips the check)")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded in the change history")
	return cmd
}

func settingRollbackCmd() *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "rollback <key> <change-id>",
		Short: "Restore the value captured by a prior history entry",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			changeID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				fatal("setting rollback", fmt.Errorf("change-id must be an integer: %w", err))
			}
			change, err := apiClient.Settings.Rollback(context.Background(), args[0], &client.RollbackSettingRequest{
				ChangeID: changeID,
				Reason:   reason,
			})
			if err != nil {
				fatal("setting rollback", err)
			}
			output(change, strconv.FormatInt(change.VersionAfter, 10))
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded in the change history")
	return cmd
}

func settingHistoryCmd() *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "history <key>",
		Short: "Show a setting's change history, newest first",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			history, hasMore, err := apiClient.Settings.History(context.Background(), args[0], limit, offset)
			if err != nil {
				fatal("setting history", err)
			}
			if flagFmt == "table" {
				headers := []string{"ID", "ACTION", "VERSION", "ACTOR", "BEFORE", "AFTER", "CHANGED_AT"}
				var rows [][]string
				for _, h := range history {
					rows = append(rows, []string{
						strconv.FormatInt(h.ID, 10), h.Action, strconv.FormatInt(h.VersionAfter, 10),
						h.ActorUID, truncate(string(h.Before.Value), 25), truncate(string(h.After.Value), 25),
						h.ChangedAt.Format("2006-01-02 15:04:05"),
					})
				}
				formatTable(headers, rows)
				return
			}
			output(map[string]any{"history": history, "has_more": hasMore}, "")
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Pagination offset")
	return cmd
}
