package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/store"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect the service call and LLM event log",
}

// openEvents opens only the SQLite store; the event log never lives in Redis.
func openEvents(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		kind, _ := cmd.Flags().GetString("kind")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openEvents(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryEvents(cmd.Context(), store.QueryOpts{Limit: limit, Kind: kind})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No events found.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-9s  %-16s  %-24s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Kind", "Provider", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 110))

		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			fmt.Printf("%-5d  %-19s  %-9s  %-16s  %-24s  %-6d  %-6d  %-7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Kind,
				truncate(e.Provider, 16),
				truncate(e.Model, 24),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var eventsViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the full request/response of an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openEvents(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		sep := strings.Repeat("─", 60)

		fmt.Printf("ID:        %d\n", e.ID)
		fmt.Printf("Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Kind:      %s\n", e.Kind)
		fmt.Printf("Provider:  %s\n", e.Provider)
		if e.Model != "" {
			fmt.Printf("Model:     %s\n", e.Model)
		}
		if e.Purpose != "" {
			fmt.Printf("Purpose:   %s\n", e.Purpose)
		}
		if e.Kind == store.KindLLM {
			fmt.Printf("Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
		}
		fmt.Printf("Latency:   %dms\n", e.LatencyMs)
		fmt.Printf("Success:   %v\n", e.Success)
		if e.ErrorMessage != "" {
			fmt.Printf("Error:     %s\n", e.ErrorMessage)
		}

		fmt.Println()
		fmt.Println(sep)
		fmt.Println("REQUEST")
		fmt.Println(sep)
		if e.RequestBody != "" {
			fmt.Println(e.RequestBody)
		} else {
			fmt.Println("(not captured)")
		}

		fmt.Println(sep)
		fmt.Println("RESPONSE")
		fmt.Println(sep)
		if e.ResponseBody != "" {
			fmt.Println(e.ResponseBody)
		} else {
			fmt.Println("(not captured)")
		}

		return nil
	},
}

// eventStats aggregates calls per kind and provider.
type eventStats struct {
	Kind, Provider      string
	Calls, Failures     int
	InputTokens, Output int
	TotalLatencyMs      int64
}

func aggregateEvents(events []store.Event) []eventStats {
	byKey := make(map[string]*eventStats)
	for _, e := range events {
		key := e.Kind + "/" + e.Provider
		st, ok := byKey[key]
		if !ok {
			st = &eventStats{Kind: e.Kind, Provider: e.Provider}
			byKey[key] = st
		}
		st.Calls++
		if !e.Success {
			st.Failures++
		}
		st.InputTokens += e.InputTokens
		st.Output += e.OutputTokens
		st.TotalLatencyMs += e.LatencyMs
	}
	out := make([]eventStats, 0, len(byKey))
	for _, st := range byKey {
		out = append(out, *st)
	}
	slices.SortFunc(out, func(a, b eventStats) int {
		if c := strings.Compare(a.Kind, b.Kind); c != 0 {
			return c
		}
		return strings.Compare(a.Provider, b.Provider)
	})
	return out
}

var eventsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show call counts, failures and latency per service",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openEvents(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryEvents(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		stats := aggregateEvents(events)
		if len(stats) == 0 {
			fmt.Println("No events recorded yet.")
			return nil
		}

		fmt.Printf("%-9s  %-18s  %6s  %6s  %10s  %10s  %8s\n",
			"Kind", "Provider", "Calls", "Failed", "Input", "Output", "Avg Ms")
		fmt.Println(strings.Repeat("─", 80))
		for _, st := range stats {
			fmt.Printf("%-9s  %-18s  %6d  %6d  %10d  %10d  %8d\n",
				st.Kind, truncate(st.Provider, 18), st.Calls, st.Failures,
				st.InputTokens, st.Output, st.TotalLatencyMs/int64(st.Calls))
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	eventsListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	eventsListCmd.Flags().StringP("kind", "k", "", "Filter by kind (llm, translate, tag, image, quote)")
	eventsListCmd.Flags().StringP("purpose", "p", "", "Filter by LLM purpose")

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsViewCmd)
	eventsCmd.AddCommand(eventsStatsCmd)
}
