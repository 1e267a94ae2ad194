// Package leaderboard turns aggregate summaries into the posted summary
// message: the fixed-width table, the leader lines, and today's winners.
package leaderboard

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/puzzlehut/strands-bot/database"
)

// DisplayName maps a username to a friendlier display name. The zero
// value (nil) leaves usernames untouched.
type DisplayName func(username string) string

func (d DisplayName) resolve(username string) string {
	if d == nil {
		return username
	}
	return d(username)
}

// RenderTable renders the summary table with one row per user from the
// overall summary, joined by username against the 7-day summary. Users
// with no 7-day data get a blank 7-day column, not a zero.
func RenderTable(overall, last7 []database.AggregateSummary, names DisplayName) string {
	last7ByUser := make(map[string]database.AggregateSummary, len(last7))
	for _, summary := range last7 {
		last7ByUser[summary.Username] = summary
	}

	var builder strings.Builder
	builder.WriteString("Strands Summary\n")
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "User\tGP\tAS\t7DA")
	for _, row := range overall {
		day7Average := ""
		if day7, ok := last7ByUser[row.Username]; ok {
			day7Average = fmt.Sprintf("%.2f", day7.Average)
		}
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%s\n", names.resolve(row.Username), row.Games, row.Average, day7Average)
	}
	w.Flush()
	return builder.String()
}

// RenderMonthly renders the previous-month table, User | GP | AS only.
func RenderMonthly(rows []database.AggregateSummary, names DisplayName) string {
	var builder strings.Builder
	builder.WriteString("Strands Last Month\n")
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "User\tGP\tAS")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%d\t%.2f\n", names.resolve(row.Username), row.Games, row.Average)
	}
	w.Flush()
	return builder.String()
}

// Leader returns the username leading a summary: the first row, unless
// that row is the bot itself, in which case the second row. Empty when
// there is no eligible row.
func Leader(rows []database.AggregateSummary, botName string) string {
	index := 0
	if len(rows) > 0 && rows[0].Username == botName {
		index = 1
	}
	if index >= len(rows) {
		return ""
	}
	return rows[index].Username
}

// TodaysWinners returns every non-bot player tied for the lowest score in
// the latest puzzle's results, in posting order. Ties are legitimate and
// all tied names are listed.
func TodaysWinners(scores []database.GameScore, botName string) []string {
	lowest := 0
	found := false
	for _, score := range scores {
		if score.Username == botName {
			continue
		}
		if !found || score.Score < lowest {
			lowest = score.Score
			found = true
		}
	}
	if !found {
		return nil
	}

	var winners []string
	for _, score := range scores {
		if score.Username == botName {
			continue
		}
		if score.Score == lowest {
			winners = append(winners, score.Username)
		}
	}
	return winners
}

// BuildMessage assembles the full summary text: the code-fenced table,
// the leader lines, today's winners, and the optional footer.
func BuildMessage(table, overallLeader, day7Leader string, winners []string, names DisplayName, footer string) string {
	displayWinners := make([]string, 0, len(winners))
	for _, winner := range winners {
		displayWinners = append(displayWinners, names.resolve(winner))
	}

	var builder strings.Builder
	builder.WriteString("```\n")
	builder.WriteString(table)
	builder.WriteString("```\n")
	fmt.Fprintf(&builder, "***Overall Leader: %s***\n", names.resolve(overallLeader))
	fmt.Fprintf(&builder, "**7 Day Leader: %s**\n", names.resolve(day7Leader))
	fmt.Fprintf(&builder, "**Today's Winners: %s**", strings.Join(displayWinners, ", "))
	if footer != "" {
		fmt.Fprintf(&builder, "\n*%s*", footer)
	}
	return builder.String()
}
