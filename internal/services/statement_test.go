package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"nextstep/scholarship-matcher/internal/models"
)

func fullProfile() models.CVProfile {
	return models.CVProfile{
		Gender:         "Female",
		Nationality:    "Egypt",
		Degree:         "Bachelor",
		Major:          "Computer Science",
		GPA:            "3.9",
		University:     "Cairo University",
		GraduationYear: "2024",
		Skills:         []string{"python", "sql"},
	}
}

func TestRenderStatement_FullProfile(t *testing.T) {
	got := RenderStatement(fullProfile())

	want := "I am a female from Egypt with a Bachelor's degree in Computer Science. " +
		"I have a gpa of 3.9 and studied at Cairo University and graduated in 2024. " +
		"My skills include python, sql."
	assert.Equal(t, want, got)
}

func TestRenderStatement_Deterministic(t *testing.T) {
	first := RenderStatement(fullProfile())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, RenderStatement(fullProfile()))
	}
}

func TestRenderStatement_NoFormattingArtifacts(t *testing.T) {
	got := RenderStatement(fullProfile())
	assert.NotContains(t, got, "  ")
	assert.NotContains(t, got, " .")
	assert.NotContains(t, got, " ,")
}

func TestRenderStatement_DegreeMajorVariants(t *testing.T) {
	degreeOnly := RenderStatement(models.CVProfile{Degree: "Master"})
	assert.Equal(t, "I am with a Master's degree.", degreeOnly)

	majorOnly := RenderStatement(models.CVProfile{Major: "Data Science"})
	assert.Equal(t, "I am with a Data Science major.", majorOnly)
}

func TestRenderStatement_OmitsEmptySentences(t *testing.T) {
	got := RenderStatement(models.CVProfile{Skills: []string{"python"}})
	assert.Equal(t, "My skills include python.", got)
	assert.False(t, strings.Contains(got, "I am"))
	assert.False(t, strings.Contains(got, "I have"))
}

func TestRenderStatement_EmptyProfile(t *testing.T) {
	assert.Equal(t, "", RenderStatement(models.CVProfile{}))
}

func TestRenderStatement_AcademicJoinedWithAnd(t *testing.T) {
	got := RenderStatement(models.CVProfile{GPA: "3.5", GraduationYear: "2023"})
	assert.Equal(t, "I have a gpa of 3.5 and graduated in 2023.", got)
}

func TestStatementFromRecord_MalformedSkillsFallsBack(t *testing.T) {
	record := &models.CVRecord{Skills: "{not json"}
	assert.Equal(t, FallbackStatement, StatementFromRecord(record))
}

func TestStatementFromRecord_NilRecord(t *testing.T) {
	assert.Equal(t, "", StatementFromRecord(nil))
}

func TestStatementFromRecord_RoundTrip(t *testing.T) {
	record, err := fullProfile().Record(uuid.New())
	assert.NoError(t, err)

	assert.Equal(t, RenderStatement(fullProfile()), StatementFromRecord(record))
}
