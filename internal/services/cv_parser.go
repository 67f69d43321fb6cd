package services

import (
	"io"

	"nextstep/scholarship-matcher/internal/models"
)

// CVParser turns one CV document into a structured profile: extract text,
// annotate, then run every field extractor over the shared text and
// annotation. Individual field misses are normal outcomes, not errors; only
// extraction and annotation can fail.
type CVParser interface {
	Parse(r io.ReaderAt, size int64) (models.CVProfile, error)
	ParseFile(filePath string) (models.CVProfile, error)
	ParseText(text string) (models.CVProfile, error)
}

type cvParser struct {
	pdfParser PDFParserService
	annotator Annotator
	skills    []string
	majors    []string
}

func NewCVParser(pdfParser PDFParserService, annotator Annotator) CVParser {
	return &cvParser{
		pdfParser: pdfParser,
		annotator: annotator,
		skills:    DefaultSkillsLexicon,
		majors:    DefaultMajorsLexicon,
	}
}

// NewCVParserWithLexicons builds a parser with caller-supplied skill and
// major vocabularies.
func NewCVParserWithLexicons(pdfParser PDFParserService, annotator Annotator, skills, majors []string) CVParser {
	return &cvParser{
		pdfParser: pdfParser,
		annotator: annotator,
		skills:    skills,
		majors:    majors,
	}
}

func (p *cvParser) Parse(r io.ReaderAt, size int64) (models.CVProfile, error) {
	text, err := p.pdfParser.ExtractText(r, size)
	if err != nil {
		return models.CVProfile{}, err
	}
	return p.ParseText(text)
}

func (p *cvParser) ParseFile(filePath string) (models.CVProfile, error) {
	text, err := p.pdfParser.ExtractTextFromFile(filePath)
	if err != nil {
		return models.CVProfile{}, err
	}
	return p.ParseText(text)
}

func (p *cvParser) ParseText(text string) (models.CVProfile, error) {
	doc, err := p.annotator.Annotate(text)
	if err != nil {
		return models.CVProfile{}, err
	}

	return models.CVProfile{
		Skills:         ExtractSkills(doc, p.skills),
		University:     ExtractUniversity(doc),
		Degree:         ExtractDegree(text),
		Major:          ExtractMajor(doc, p.majors),
		GraduationYear: ExtractGraduationYear(text),
		GPA:            ExtractGPA(text),
		Nationality:    ExtractNationality(doc),
		Gender:         ExtractGender(text),
		DateOfBirth:    ExtractDateOfBirth(text),
	}, nil
}
