package pos

var descriptions = map[string]string{
	Noun:         "A word that represents a person, place, thing, or idea",
	Verb:         "A word that expresses an action, occurrence, or state of being",
	Adjective:    "A word that describes or modifies a noun",
	Adverb:       "A word that modifies a verb, adjective, or other adverb",
	ProperNoun:   "A proper noun representing a unique entity (name, place, organization)",
	Numeral:      "A numeral or number word",
	Determiner:   "A determiner that introduces a noun (the, a, an, this, that)",
	Pronoun:      "A word that substitutes for a noun (I, you, he, she, it)",
	Adposition:   "An adposition like prepositions (in, on, under) or postpositions",
	Conjunction:  "A conjunction that connects words or phrases (and, but, or)",
	Particle:     "A particle word that has grammatical function",
	Interjection: "An exclamation or sound expressing emotion",
}

// Describe returns a one-line explanation of tag, used as the default
// flashcard meaning.
func Describe(tag string) string {
	if d, ok := descriptions[tag]; ok {
		return d
	}
	return "A word or term in the language"
}
