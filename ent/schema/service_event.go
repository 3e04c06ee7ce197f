package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ServiceEvent records one call to an external service: an LLM request,
// a translation, a tagging call, an image render or a quote fetch.
type ServiceEvent struct {
	ent.Schema
}

func (ServiceEvent) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "service_events"},
	}
}

func (ServiceEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ServiceEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("kind").
			NotEmpty().
			Comment("llm, translate, tag, image or quote"),
		field.String("provider").
			Default("").
			Comment("Provider or strategy name, e.g. openai, lecto, mymemory"),
		field.String("model").
			Default("").
			Comment("Model ID for LLM and image calls"),
		field.String("purpose").
			Default("").
			Comment("Caller label for LLM calls, e.g. pos-tag"),
		field.Int("input_tokens").
			Default(0),
		field.Int("output_tokens").
			Default(0),
		field.Int64("latency_ms").
			Default(0).
			Comment("Wall-clock time for the call"),
		field.Bool("success").
			Default(false),
		field.String("error_message").
			Default(""),
		field.Text("request_body").
			Default("").
			Comment("Serialized LLM request, empty for other kinds"),
		field.Text("response_body").
			Default(""),
	}
}

func (ServiceEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("kind"),
		index.Fields("provider"),
		index.Fields("success"),
	}
}
