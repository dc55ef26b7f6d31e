package model

type ExperienceItem struct {
	JobTitle         string   `json:"job_title" validate:"required"`
	Company          string   `json:"company" validate:"required"`
	StartDate        string   `json:"start_date,omitempty"` // MM/YYYY
	EndDate          string   `json:"end_date,omitempty"`
	Location         string   `json:"location,omitempty"`
	Responsibilities []string `json:"responsibilities"`
}

type EducationItem struct {
	Institution string `json:"institution" validate:"required"`
	Degree      string `json:"degree,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Location    string `json:"location,omitempty"`
	Note        string `json:"note,omitempty"`
}

type LanguageItem struct {
	Language string `json:"language" validate:"required"`
	Level    string `json:"level" validate:"required"` // A1-C2 or "Muttersprache"
}

// CandidateRecord is the profile snapshot a single generation request works on.
// Field order is the serialisation order sent to the model.
type CandidateRecord struct {
	Name                 string           `json:"name" validate:"required"`
	Email                string           `json:"email" validate:"required,email"`
	Phone                string           `json:"phone"`
	Address              string           `json:"address"`
	BirthDate            string           `json:"birth_date"`
	BirthPlace           string           `json:"birth_place"`
	Summary              string           `json:"summary"`
	Skills               []string         `json:"skills"`
	Interests            []string         `json:"interests"`
	Experience           []ExperienceItem `json:"experience" validate:"dive"`
	Education            []EducationItem  `json:"education" validate:"dive"`
	Languages            []LanguageItem   `json:"languages" validate:"dive"`
	AdditionalInfo       string           `json:"additional_info"`
	JobDescription       string           `json:"job_description" validate:"required"`
	IncludeSimpleVersion bool             `json:"include_simple_version"`
	WantPDF              bool             `json:"want_pdf"`
}

// Normalized returns a copy with nil lists replaced by empty ones, so the
// serialised form does not depend on how the record was decoded.
func (c CandidateRecord) Normalized() CandidateRecord {
	out := c
	out.Skills = nonNil(c.Skills)
	out.Interests = nonNil(c.Interests)

	out.Experience = make([]ExperienceItem, len(c.Experience))
	for i, item := range c.Experience {
		item.Responsibilities = nonNil(item.Responsibilities)
		out.Experience[i] = item
	}

	out.Education = append(make([]EducationItem, 0, len(c.Education)), c.Education...)
	out.Languages = append(make([]LanguageItem, 0, len(c.Languages)), c.Languages...)
	return out
}

func nonNil(items []string) []string {
	return append(make([]string, 0, len(items)), items...)
}
