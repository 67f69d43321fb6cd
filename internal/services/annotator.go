package services

import (
	"fmt"
	"regexp"
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// Entity labels the extractors care about.
const (
	LabelOrganization = "ORG"
	LabelGeopolitical = "GPE"
)

type Entity struct {
	Text  string
	Label string
}

// AnnotatedDocument is the in-memory result of running the NLP pipeline over
// extracted CV text: the lowercased token sequence in document order plus the
// labeled entities found in it. It lives only for the duration of one parse.
type AnnotatedDocument struct {
	Tokens   []string
	Entities []Entity
}

// Annotator wraps a pluggable NLP backend with tokenize and entity
// recognition capabilities.
type Annotator interface {
	Annotate(text string) (*AnnotatedDocument, error)
}

// proseAnnotator is the default backend. Tokenization and geopolitical
// entities come from the prose pipeline; organization entities come from a
// pattern layer, since prose's statistical NER does not emit ORG labels.
type proseAnnotator struct{}

func NewProseAnnotator() Annotator {
	return &proseAnnotator{}
}

var organizationPattern = regexp.MustCompile(
	`(?:[A-Z][A-Za-z&.'-]+\s+)+(?:University|College|Institute)\b(?:\s+of(?:\s+[A-Z][A-Za-z&.'-]+)+)?` +
		`|(?:University|College|Institute)\s+of(?:\s+[A-Z][A-Za-z&.'-]+)+`,
)

func (a *proseAnnotator) Annotate(text string) (*AnnotatedDocument, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnnotation, err)
	}

	proseTokens := doc.Tokens()
	tokens := make([]string, 0, len(proseTokens))
	for _, tok := range proseTokens {
		tokens = append(tokens, strings.ToLower(tok.Text))
	}

	var entities []Entity
	for _, ent := range doc.Entities() {
		if ent.Label == LabelGeopolitical {
			entities = append(entities, Entity{Text: ent.Text, Label: LabelGeopolitical})
		}
	}
	entities = append(entities, organizationEntities(text)...)

	return &AnnotatedDocument{Tokens: tokens, Entities: entities}, nil
}

func organizationEntities(text string) []Entity {
	var entities []Entity
	seen := make(map[string]bool)

	for _, match := range organizationPattern.FindAllString(text, -1) {
		match = strings.TrimSpace(match)
		if match == "" || seen[match] {
			continue
		}
		seen[match] = true
		entities = append(entities, Entity{Text: match, Label: LabelOrganization})
	}

	return entities
}
