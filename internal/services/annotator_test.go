package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProseAnnotator_TokensAreLowercased(t *testing.T) {
	annotator := NewProseAnnotator()

	doc, err := annotator.Annotate("I know Python and SQL")
	require.NoError(t, err)

	assert.Contains(t, doc.Tokens, "python")
	assert.Contains(t, doc.Tokens, "sql")
	for _, token := range doc.Tokens {
		assert.Equal(t, strings.ToLower(token), token)
	}
}

func TestProseAnnotator_OrganizationRule(t *testing.T) {
	annotator := NewProseAnnotator()

	doc, err := annotator.Annotate("I studied at Cairo University before moving abroad.")
	require.NoError(t, err)

	var orgs []string
	for _, ent := range doc.Entities {
		if ent.Label == LabelOrganization {
			orgs = append(orgs, ent.Text)
		}
	}
	assert.Contains(t, orgs, "Cairo University")
}

func TestOrganizationEntities(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"graduated from Cairo University with honors", []string{"Cairo University"}},
		{"attended the University of Toronto", []string{"University of Toronto"}},
		{"Harvard College and Cairo University", []string{"Harvard College", "Cairo University"}},
		{"no school mentioned here", nil},
	}

	for _, tt := range tests {
		var got []string
		for _, ent := range organizationEntities(tt.text) {
			got = append(got, ent.Text)
		}
		assert.Equal(t, tt.want, got, "text: %s", tt.text)
	}
}

func TestOrganizationEntities_Deduplicated(t *testing.T) {
	ents := organizationEntities("Cairo University, again Cairo University")
	assert.Len(t, ents, 1)
}
