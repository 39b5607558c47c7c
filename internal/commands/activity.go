package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/unilets/internal/activity"
	"github.com/beesaferoot/unilets/internal/database"
)

func ActivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Read the audit trail",
	}
	cmd.AddCommand(ActivityListCmd())
	return cmd
}

func ActivityListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List activity entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := activityFilter(cmd)
			if err != nil {
				return err
			}

			db, _, err := getDB(cmd)
			if err != nil {
				return err
			}
			defer database.Close(db)

			rows, err := activity.NewStore(db).Query(cmd.Context(), filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No activity recorded.")
				return nil
			}

			fmt.Fprintf(out, "%-20s  %-6s  %-24s  %-24s  %s\n", "Time", "User", "Action", "Resource", "Details")
			for _, row := range rows {
				user := "-"
				if row.UserID != nil {
					user = fmt.Sprint(*row.UserID)
				}
				resource := row.ResourceType
				if row.ResourceID != "" {
					resource += "/" + row.ResourceID
				}
				fmt.Fprintf(out, "%-20s  %-6s  %-24s  %-24s  %s\n",
					row.CreatedAt.UTC().Format(time.RFC3339), user, row.Action, resource, string(row.Details))
			}
			return nil
		},
	}

	cmd.Flags().Uint("user", 0, "Only entries by this user id")
	cmd.Flags().String("action", "", "Only entries with this action")
	cmd.Flags().String("resource-type", "", "Only entries for this resource type")
	cmd.Flags().String("resource-id", "", "Only entries for this resource id")
	cmd.Flags().String("since", "", "Only entries at or after this RFC 3339 time")
	cmd.Flags().String("until", "", "Only entries before this RFC 3339 time")
	cmd.Flags().Int("limit", activity.DefaultLimit, "Maximum number of entries")

	return cmd
}

func activityFilter(cmd *cobra.Command) (activity.Filter, error) {
	var f activity.Filter

	if cmd.Flags().Changed("user") {
		id, _ := cmd.Flags().GetUint("user")
		f.UserID = &id
	}
	f.Action, _ = cmd.Flags().GetString("action")
	f.ResourceType, _ = cmd.Flags().GetString("resource-type")
	f.ResourceID, _ = cmd.Flags().GetString("resource-id")
	f.Limit, _ = cmd.Flags().GetInt("limit")

	for flag, target := range map[string]*time.Time{"since": &f.Since, "until": &f.Until} {
		raw, _ := cmd.Flags().GetString(flag)
		if raw == "" {
			continue
		}
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, fmt.Errorf("invalid --%s: %w", flag, err)
		}
		*target = parsed
	}
	return f, nil
}
