package main

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/folioreads/folio-admin/client"
)

func newAuditCmd() *cobra.Command {
	var actorUID, action, resourceType, resourceID, since, until string
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Query the platform-wide audit log (super_admin only)",
		Run: func(cmd *cobra.Command, args []string) {
			opts := &client.AuditQueryOptions{
				ActorUID:     actorUID,
				Action:       action,
				ResourceType: resourceType,
				ResourceID:   resourceID,
				Limit:        limit,
				Offset:       offset,
			}
			if since != "" {
				ts, err := time.Parse(time.RFC3339, since)
				if err != nil {
					fatal("audit", err)
				}
				opts.Since = &ts
			}
			if until != "" {
				ts, err := time.Parse(time.RFC3339, until)
				if err != nil {
					fatal("audit", err)
				}
				opts.Until = &ts
			}

			entries, hasMore, err := apiClient.Audit.Query(context.Background(), opts)
			if err != nil {
				fatal("audit", err)
			}
			if flagFmt == "table" {
				headers := []string{"ID", "ACTOR", "ACTION", "RESOURCE", "ID", "CREATED_AT"}
				var rows [][]string
				for _, e := range entries {
					resID := ""
					if e.ResourceID != nil {
						resID = *e.ResourceID
					}
					rows = append(rows, []string{
						strconv.FormatInt(e.ID, 10), e.ActorUID, e.Action,
						e.ResourceType, resID, e.CreatedAt.Format("2006-01-02 15:04:05"),
					})
				}
				formatTable(headers, rows)
				return
			}
			output(map[string]any{"data": entries, "has_more": hasMore}, "")
		},
	}
	cmd.Flags().StringVar(&actorUID, "actor", "", "Filter by acting admin uid")
	cmd.Flags().StringVar(&action, "action", "", "Filter by action")
	cmd.Flags().StringVar(&resourceType, "resource-type", "", "Filter by resource type")
	cmd.Flags().StringVar(&resourceID, "resource-id", "", "Filter by resource id")
	cmd.Flags().StringVar(&since, "since", "", "Entries at or after this RFC3339 timestamp")
	cmd.Flags().StringVar(&until, "until", "", "Entries at or before this RFC3339 timestamp")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Pagination offset")
	return cmd
}
