package domain

import "strings"

// Email verification status filter values accepted by the search provider.
const (
	EmailStatusVerified   = "Verified"
	EmailStatusUnverified = "Unverified"
	EmailStatusAll        = "All"
)

const DefaultMaxResults = 10

// SearchCriteria is the caller-supplied lead search request. Create once per
// request, Normalize, then treat as immutable.
type SearchCriteria struct {
	Industry        string   `json:"industry"`
	Location        string   `json:"location"`
	TargetTitles    []string `json:"targetTitles"`
	CompanyKeywords string   `json:"companyKeywords"`
	CompanySize     string   `json:"companySize"`
	EmailStatus     string   `json:"emailStatus"`
	MustHaveEmail   bool     `json:"mustHaveEmail"`
	MustHavePhone   bool     `json:"mustHavePhone"`
	MaxResults      int      `json:"maxResults"`
}

// Normalize returns a cleaned copy: titles trimmed, empties dropped,
// exact duplicates removed, MaxResults defaulted to DefaultMaxResults
// when missing or non-positive.
func (c SearchCriteria) Normalize() SearchCriteria {
	out := c

	seen := map[string]bool{}
	var titles []string
	for _, t := range c.TargetTitles {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		titles = append(titles, t)
	}
	out.TargetTitles = titles

	if out.MaxResults < 1 {
		out.MaxResults = DefaultMaxResults
	}
	return out
}

// RawLead is one dataset item as returned by the search provider. Every
// field is optional on the wire; absent fields decode to "".
type RawLead struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Position    string `json:"position"`
	Phone       string `json:"phone"`
	LinkedinURL string `json:"linkedinUrl"`
	EmailStatus string `json:"emailStatus"`
	OrgName     string `json:"orgName"`
	OrgIndustry string `json:"orgIndustry"`
}

// Lead is the enriched, fully-populated record returned to callers. All
// string fields are total (never absent), Posts is never nil.
type Lead struct {
	FullName       string   `json:"fullName"`
	Email          string   `json:"email"`
	Position       string   `json:"position"`
	Phone          string   `json:"phone"`
	LinkedinURL    string   `json:"linkedinUrl"`
	EmailStatus    string   `json:"emailStatus"`
	OrgName        string   `json:"orgName"`
	OrgIndustry    string   `json:"orgIndustry"`
	GeneratedEmail string   `json:"generatedEmail"`
	Posts          []string `json:"posts"`
}

// NewLead is the single RawLead→Lead normalization point: downstream code
// can assume every field is present and Posts is a non-nil slice.
func NewLead(r RawLead) Lead {
	return Lead{
		FullName:    r.FullName,
		Email:       r.Email,
		Position:    r.Position,
		Phone:       r.Phone,
		LinkedinURL: r.LinkedinURL,
		EmailStatus: r.EmailStatus,
		OrgName:     r.OrgName,
		OrgIndustry: r.OrgIndustry,
		Posts:       []string{},
	}
}
