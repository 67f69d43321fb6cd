package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func docFromTokens(tokens ...string) *AnnotatedDocument {
	return &AnnotatedDocument{Tokens: tokens}
}

func TestExtractSkills(t *testing.T) {
	doc := docFromTokens("i", "know", "python", "and", "sql")
	skills := ExtractSkills(doc, []string{"python", "sql", "java"})
	assert.ElementsMatch(t, []string{"python", "sql"}, skills)
}

func TestExtractSkills_MultiWordWindow(t *testing.T) {
	doc := docFromTokens("experienced", "in", "machine", "learning", "and", "deep", "learning")
	skills := ExtractSkills(doc, DefaultSkillsLexicon)
	assert.ElementsMatch(t, []string{"machine learning", "deep learning"}, skills)
}

func TestExtractSkills_NoMatches(t *testing.T) {
	doc := docFromTokens("fluent", "in", "french")
	skills := ExtractSkills(doc, DefaultSkillsLexicon)
	assert.Empty(t, skills)
}

func TestExtractMajor_TwoTokenMinimum(t *testing.T) {
	// "data" alone never matches; "data science" does
	doc := docFromTokens("studied", "data", "science", "at", "cairo")
	assert.Equal(t, "Data Science", ExtractMajor(doc, DefaultMajorsLexicon))
}

func TestExtractMajor_DeterministicTieBreak(t *testing.T) {
	doc := docFromTokens("software", "engineering", "and", "data", "science")
	lexicon := []string{"Data Science", "Software Engineering"}

	// Both majors match; the one declared first in the lexicon wins, every time
	for i := 0; i < 20; i++ {
		assert.Equal(t, "Data Science", ExtractMajor(doc, lexicon))
	}
}

func TestExtractMajor_NoMatch(t *testing.T) {
	doc := docFromTokens("studied", "history")
	assert.Equal(t, "", ExtractMajor(doc, DefaultMajorsLexicon))
}

func TestExtractDegree(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Bachelor of Science", "Bachelor"},
		{"PHD candidate", "PHD"},
		{"completed an MSc in 2020", "MSc"},
		{"holder of a Ph.D degree", "Ph.D"},
		{"no degree mentioned", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractDegree(tt.text), "text: %s", tt.text)
	}
}

func TestExtractGPA(t *testing.T) {
	assert.Equal(t, "3.75", ExtractGPA("My GPA is 3.75/4.0 overall"))
	assert.Equal(t, "3.9", ExtractGPA("GPA: 3.9 / 4.0"))
	assert.Equal(t, "", ExtractGPA("My GPA is 3.75 out of 4"))
}

func TestExtractDateOfBirth(t *testing.T) {
	assert.Equal(t, "12/05/1999", ExtractDateOfBirth("Date of Birth: 12/05/1999"))
	assert.Equal(t, "1-2-2000", ExtractDateOfBirth("DOB 1-2-2000"))
	assert.Equal(t, "", ExtractDateOfBirth("born a long time ago"))
}

func TestExtractGender(t *testing.T) {
	assert.Equal(t, "Female", ExtractGender("Gender: female"))
	assert.Equal(t, "Male", ExtractGender("gender MALE"))
	assert.Equal(t, "", ExtractGender("no such label"))
}

func TestExtractGraduationYear(t *testing.T) {
	assert.Equal(t, "2024", ExtractGraduationYear("Graduation Year: 2024"))
	assert.Equal(t, "2019", ExtractGraduationYear("graduation: 2019"))
	assert.Equal(t, "", ExtractGraduationYear("graduating soon"))
}

func TestExtractUniversity(t *testing.T) {
	doc := &AnnotatedDocument{
		Entities: []Entity{
			{Text: "Google", Label: LabelOrganization},
			{Text: "Cairo University", Label: LabelOrganization},
			{Text: "Harvard College", Label: LabelOrganization},
		},
	}
	assert.Equal(t, "Cairo University", ExtractUniversity(doc))
}

func TestExtractUniversity_NoOrgEntities(t *testing.T) {
	doc := &AnnotatedDocument{
		Entities: []Entity{{Text: "Egypt", Label: LabelGeopolitical}},
	}
	assert.Equal(t, "", ExtractUniversity(doc))
}

func TestExtractNationality_FirstInDocumentOrder(t *testing.T) {
	doc := &AnnotatedDocument{
		Entities: []Entity{
			{Text: "Egypt", Label: LabelGeopolitical},
			{Text: "Germany", Label: LabelGeopolitical},
		},
	}
	assert.Equal(t, "Egypt", ExtractNationality(doc))
}

func TestSlidingWindow_LexiconKeyNormalization(t *testing.T) {
	// Lexicon entries are matched on their lowercased whitespace-tokenized form
	doc := docFromTokens("natural", "language", "processing", "expert")
	assert.Equal(t, "Natural Language Processing", ExtractMajor(doc, DefaultMajorsLexicon))

	keys := lexiconKeys([]string{"  Machine   Learning "})
	_, ok := keys["machine learning"]
	assert.True(t, ok)
}

func TestExtractSkills_WindowCapAtFourTokens(t *testing.T) {
	lexicon := []string{"one two three four five"}
	tokens := strings.Fields("one two three four five")
	skills := ExtractSkills(docFromTokens(tokens...), lexicon)
	assert.Empty(t, skills)
}
