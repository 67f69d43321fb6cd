package services

import (
	"fmt"
	"strings"

	"nextstep/scholarship-matcher/internal/models"
)

// FallbackStatement is returned when a stored record cannot be decoded into a
// profile. A degraded narrative is preferable to aborting the match pipeline.
const FallbackStatement = "Could not generate profile due to incomplete data"

// RenderStatement converts a profile into the prose paragraph used as the
// matcher's query text. Deterministic: the same profile always renders to the
// same string. Sentences are emitted in fixed order and only when they have
// content.
func RenderStatement(profile models.CVProfile) string {
	var parts []string

	// 1. Identity
	var basicInfo []string
	if profile.Gender != "" {
		basicInfo = append(basicInfo, fmt.Sprintf("a %s", strings.ToLower(profile.Gender)))
	}
	if profile.Nationality != "" {
		basicInfo = append(basicInfo, fmt.Sprintf("from %s", profile.Nationality))
	}
	switch {
	case profile.Degree != "" && profile.Major != "":
		basicInfo = append(basicInfo, fmt.Sprintf("with a %s's degree in %s", profile.Degree, profile.Major))
	case profile.Degree != "":
		basicInfo = append(basicInfo, fmt.Sprintf("with a %s's degree", profile.Degree))
	case profile.Major != "":
		basicInfo = append(basicInfo, fmt.Sprintf("with a %s major", profile.Major))
	}
	if len(basicInfo) > 0 {
		parts = append(parts, "I am "+strings.Join(basicInfo, " ")+".")
	}

	// 2. Academic
	var academicInfo []string
	if profile.GPA != "" {
		academicInfo = append(academicInfo, fmt.Sprintf("gpa of %s", profile.GPA))
	}
	if profile.University != "" {
		academicInfo = append(academicInfo, fmt.Sprintf("studied at %s", profile.University))
	}
	if profile.GraduationYear != "" {
		academicInfo = append(academicInfo, fmt.Sprintf("graduated in %s", profile.GraduationYear))
	}
	if len(academicInfo) > 0 {
		parts = append(parts, "I have a "+strings.Join(academicInfo, " and ")+".")
	}

	// 3. Skills
	if len(profile.Skills) > 0 {
		parts = append(parts, "My skills include "+strings.Join(profile.Skills, ", ")+".")
	}

	statement := strings.Join(parts, " ")

	statement = strings.ReplaceAll(statement, " ,", ",")
	statement = strings.ReplaceAll(statement, " .", ".")
	statement = strings.ReplaceAll(statement, "  ", " ")

	return strings.TrimSpace(statement)
}

// StatementFromRecord renders the narrative for a stored CV record. It never
// fails: a record that cannot be decoded degrades to FallbackStatement.
func StatementFromRecord(record *models.CVRecord) string {
	if record == nil {
		return ""
	}

	profile, err := record.Profile()
	if err != nil {
		return FallbackStatement
	}

	return RenderStatement(profile)
}
