package search

import (
	"strings"

	"leadengine/internal/domain"
)

// Input is one actor run input: filter keys the lead-scraper actor accepts.
type Input map[string]any

// addIfValue sets key only when value carries information. Empty strings and
// empty string slices are omitted entirely (never sent as null or []).
// Booleans and integers always pass: false is not "empty".
func addIfValue(in Input, key string, value any) {
	switch v := value.(type) {
	case nil:
		return
	case string:
		if strings.TrimSpace(v) == "" {
			return
		}
	case []string:
		if len(v) == 0 {
			return
		}
	}
	in[key] = value
}

// addList wraps a scalar criterion in the single-element array the actor
// expects, omitting it when blank.
func addList(in Input, key, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	in[key] = []string{value}
}

// Tier is one specificity level of the relaxation cascade. Build is a pure
// function of the criteria so each tier's field-inclusion rules test in
// isolation.
type Tier struct {
	Name  string
	Build func(domain.SearchCriteria) Input
}

// Tiers returns the cascade in strictly decreasing specificity.
func Tiers() []Tier {
	return []Tier{
		{Name: "full", Build: buildFull},
		{Name: "location", Build: buildLocation},
		{Name: "minimal", Build: buildMinimal},
	}
}

// buildMinimal keeps only the result cap and contact-field requirements.
func buildMinimal(c domain.SearchCriteria) Input {
	in := Input{}
	addIfValue(in, "totalResults", c.MaxResults)
	addIfValue(in, "hasEmail", c.MustHaveEmail)
	addIfValue(in, "hasPhone", c.MustHavePhone)
	if c.EmailStatus != "" && c.EmailStatus != domain.EmailStatusAll {
		addList(in, "contactEmailStatus", c.EmailStatus)
	}
	return in
}

// buildLocation drops industry/title/keyword/size but keeps the country.
func buildLocation(c domain.SearchCriteria) Input {
	in := buildMinimal(c)
	addList(in, "companyCountry", c.Location)
	return in
}

func buildFull(c domain.SearchCriteria) Input {
	in := buildLocation(c)
	addList(in, "companyIndustry", c.Industry)
	addIfValue(in, "personTitle", c.TargetTitles)
	addList(in, "companyKeyword", c.CompanyKeywords)
	addList(in, "companyEmployeeSize", c.CompanySize)
	return in
}
