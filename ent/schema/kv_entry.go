package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
)

// KVEntry is one key of the key-value table holding progress, settings,
// flashcards and API keys as JSON or plain strings.
type KVEntry struct {
	ent.Schema
}

func (KVEntry) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "kv_entries"},
	}
}

func (KVEntry) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("name").
			NotEmpty().
			Immutable().
			Comment("Storage key, e.g. language-learning-flashcards"),
		field.Text("value"),
		field.Int64("updated_at").
			Comment("Unix milliseconds of the last write"),
	}
}
