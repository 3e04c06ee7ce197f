package store

import (
	"context"
	"time"
)

// Event kinds recorded in the service event log.
const (
	KindLLM       = "llm"
	KindTranslate = "translate"
	KindTag       = "tag"
	KindImage     = "image"
	KindQuote     = "quote"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	Kind  string    // exact kind match ("" = all)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// ServiceCallEventData captures one attempt against an external service
// inside a fallback chain.
type ServiceCallEventData struct {
	Kind         string
	Provider     string
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// Event is a stored row of the event log.
type Event struct {
	ID           int
	Timestamp    time.Time
	Kind         string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// EventRepo provides append and query access to the service event log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendServiceCall records a translation, tagging, image or quote call.
	AppendServiceCall(ctx context.Context, data ServiceCallEventData) error

	// QueryEvents returns events newest first.
	QueryEvents(ctx context.Context, opts QueryOpts) ([]Event, error)

	// GetEvent returns a single event by ID, or nil if not found.
	GetEvent(ctx context.Context, id int) (*Event, error)
}
