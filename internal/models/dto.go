package models

type UploadCVResponse struct {
	CandidateID string    `json:"candidate_id"`
	RecordID    string    `json:"record_id"`
	Profile     CVProfile `json:"profile"`
}

type CreateScholarshipRequest struct {
	Name                  string `json:"name"`
	Description           string `json:"description"`
	Requirements          string `json:"requirements"`
	FieldOfStudy          string `json:"field_of_study"`
	StudyLevel            string `json:"study_level"`
	EligibleNationalities string `json:"eligible_nationalities"`
	Country               string `json:"country"`
	IsFullyFunded         bool   `json:"is_fully_funded"`
}

type MatchResponse struct {
	ID          string       `json:"id"`
	Score       float64      `json:"score"`
	MatchLevel  string       `json:"match_level"`
	Scholarship *Scholarship `json:"scholarship,omitempty"`
}

type MatchListResponse struct {
	Status  string          `json:"status"`
	Count   int             `json:"count"`
	Results []MatchResponse `json:"results"`
}

type ScholarshipListResponse struct {
	Status  string        `json:"status"`
	Count   int           `json:"count"`
	Results []Scholarship `json:"results"`
}

type ScholarshipSearchResult struct {
	ScholarshipID string  `json:"scholarship_id"`
	Name          string  `json:"name"`
	Score         float32 `json:"score"`
	Snippet       string  `json:"snippet"`
}
