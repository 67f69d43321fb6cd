package services

import (
	"regexp"
	"strings"
)

// Default lexicons for the sliding-window extractors. Callers can supply their
// own lists to the parser; canonical forms are returned exactly as declared.
var (
	DefaultSkillsLexicon = []string{
		"python", "java", "c++", "machine learning", "deep learning",
		"data science", "nlp", "sql", "aws", "azure", "tensorflow",
		"keras", "reactjs",
	}

	DefaultMajorsLexicon = []string{
		"Computer Science and Engineering", "Information Technology",
		"Software Engineering", "Data Science", "Artificial Intelligence",
		"Natural Language Processing",
	}
)

var (
	degreePattern   = regexp.MustCompile(`(?i)(bachelor|master|ph\.?d|msc|bsc)`)
	gpaPattern      = regexp.MustCompile(`(\d\.\d{1,2})\s*/\s*4\.0`)
	dobPattern      = regexp.MustCompile(`(?i)(?:date of birth|dob)[\s:]*(\d{1,2}[-/.\s]?\d{1,2}[-/.\s]?\d{2,4})`)
	genderPattern   = regexp.MustCompile(`(?i)gender[:\s]*(male|female)`)
	gradYearPattern = regexp.MustCompile(`(?i)graduation\s*(year)?[:\s]*(\d{4})`)
)

// lexiconKeys maps the lowercased, whitespace-joined form of each lexicon
// entry to its canonical form.
func lexiconKeys(lexicon []string) map[string]string {
	keys := make(map[string]string, len(lexicon))
	for _, entry := range lexicon {
		key := strings.Join(strings.Fields(strings.ToLower(entry)), " ")
		keys[key] = entry
	}
	return keys
}

// slidingWindowMatches slides windows of minLen..maxLen tokens over the
// document and reports every lexicon entry that appears, keyed by its
// canonical form.
func slidingWindowMatches(tokens []string, lexicon []string, minLen, maxLen int) map[string]bool {
	keys := lexiconKeys(lexicon)
	found := make(map[string]bool)

	for i := range tokens {
		for length := minLen; length <= maxLen && i+length <= len(tokens); length++ {
			phrase := strings.Join(tokens[i:i+length], " ")
			if canonical, ok := keys[phrase]; ok {
				found[canonical] = true
			}
		}
	}

	return found
}

// ExtractSkills returns every lexicon skill present in the document, in
// lexicon declaration order, using windows of 1 to 4 tokens.
func ExtractSkills(doc *AnnotatedDocument, lexicon []string) []string {
	found := slidingWindowMatches(doc.Tokens, lexicon, 1, 4)

	var skills []string
	for _, entry := range lexicon {
		if found[entry] {
			skills = append(skills, entry)
		}
	}
	return skills
}

// ExtractMajor returns one matched major, using windows of 2 to 4 tokens.
// When several majors match, the one declared earliest in the lexicon wins so
// the result does not depend on map iteration order.
func ExtractMajor(doc *AnnotatedDocument, lexicon []string) string {
	found := slidingWindowMatches(doc.Tokens, lexicon, 2, 4)

	for _, entry := range lexicon {
		if found[entry] {
			return entry
		}
	}
	return ""
}

// ExtractDegree returns the first degree keyword in the text, as written.
func ExtractDegree(text string) string {
	return degreePattern.FindString(text)
}

// ExtractGPA returns the numerator of the first "<n>.<dd> / 4.0" occurrence.
func ExtractGPA(text string) string {
	if m := gpaPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// ExtractDateOfBirth returns the first date-shaped token following a
// "date of birth" or "dob" label.
func ExtractDateOfBirth(text string) string {
	if m := dobPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// ExtractGender returns "Male" or "Female" from the first gender label.
func ExtractGender(text string) string {
	if m := genderPattern.FindStringSubmatch(text); m != nil {
		gender := strings.ToLower(m[1])
		return strings.ToUpper(gender[:1]) + gender[1:]
	}
	return ""
}

// ExtractGraduationYear returns the 4-digit year following "graduation" or
// "graduation year".
func ExtractGraduationYear(text string) string {
	if m := gradYearPattern.FindStringSubmatch(text); m != nil {
		return m[2]
	}
	return ""
}

// ExtractUniversity returns the first organization entity whose text mentions
// a university or college.
func ExtractUniversity(doc *AnnotatedDocument) string {
	for _, ent := range doc.Entities {
		if ent.Label != LabelOrganization {
			continue
		}
		lower := strings.ToLower(ent.Text)
		if strings.Contains(lower, "university") || strings.Contains(lower, "college") {
			return ent.Text
		}
	}
	return ""
}

// ExtractNationality returns the first geopolitical entity in document order.
func ExtractNationality(doc *AnnotatedDocument) string {
	for _, ent := range doc.Entities {
		if ent.Label == LabelGeopolitical {
			return ent.Text
		}
	}
	return ""
}
