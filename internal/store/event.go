package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const eventTable = "service_events"

var eventColumns = []string{
	"id", "created_at", "kind", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

// eventRepo implements EventRepo on the service_events table.
type eventRepo struct {
	drv *entsql.Driver
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	return r.insert(ctx, Event{
		Kind:         KindLLM,
		Provider:     data.Provider,
		Model:        data.Model,
		Purpose:      data.Purpose,
		InputTokens:  data.InputTokens,
		OutputTokens: data.OutputTokens,
		LatencyMs:    data.LatencyMs,
		Success:      data.Success,
		ErrorMessage: data.ErrorMessage,
		RequestBody:  data.RequestBody,
		ResponseBody: data.ResponseBody,
	})
}

func (r *eventRepo) AppendServiceCall(ctx context.Context, data ServiceCallEventData) error {
	return r.insert(ctx, Event{
		Kind:         data.Kind,
		Provider:     data.Provider,
		LatencyMs:    data.LatencyMs,
		Success:      data.Success,
		ErrorMessage: data.ErrorMessage,
	})
}

func (r *eventRepo) insert(ctx context.Context, e Event) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(eventTable).
		Columns(eventColumns[1:]...).
		Values(
			time.Now().UnixMilli(), e.Kind, e.Provider, e.Model, e.Purpose,
			e.InputTokens, e.OutputTokens, e.LatencyMs, boolInt(e.Success),
			e.ErrorMessage, e.RequestBody, e.ResponseBody,
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save %s event: %w", e.Kind, err)
	}
	return nil
}

func (r *eventRepo) QueryEvents(ctx context.Context, opts QueryOpts) ([]Event, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(eventColumns...).
		From(entsql.Table(eventTable)).
		OrderBy(entsql.Desc("id"))
	if opts.Kind != "" {
		sel.Where(entsql.EQ("kind", opts.Kind))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("created_at", opts.To.UnixMilli()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return r.query(ctx, sel)
}

func (r *eventRepo) GetEvent(ctx context.Context, id int) (*Event, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(eventColumns...).
		From(entsql.Table(eventTable)).
		Where(entsql.EQ("id", id))
	events, err := r.query(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func (r *eventRepo) query(ctx context.Context, sel *entsql.Selector) ([]Event, error) {
	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			e       Event
			created int64
			success int
		)
		if err := rows.Scan(
			&e.ID, &created, &e.Kind, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &success,
			&e.ErrorMessage, &e.RequestBody, &e.ResponseBody,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Timestamp = time.UnixMilli(created).UTC()
		e.Success = success != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
