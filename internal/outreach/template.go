// Outreach email synthesis. Everything here is pure: same inputs, same
// string, no I/O and no failure mode.
package outreach

import "fmt"

// maxQuotedPostLen caps how much of a quoted post is embedded in the
// opener; longer posts are cut there and marked with an ellipsis.
const maxQuotedPostLen = 220

// Evidence is what we know about the lead's recent activity. Two variants
// exist because both call shapes are in use: the request path carries the
// post texts, the batch path only a count.
type Evidence interface {
	openerLine(company, title string) string
}

// PostTexts is recent post bodies, most recent first.
type PostTexts []string

// PostCount is just how many recent posts the lead has.
type PostCount int

func (p PostTexts) openerLine(company, title string) string {
	first := ""
	if len(p) > 0 {
		first = p[0]
	}
	quoted := truncatePost(first)
	if quoted == "" {
		return fmt.Sprintf("I was looking at your work at %s and thought there might be a helpful way to support %s goals.", company, title)
	}
	return fmt.Sprintf("I read your recent LinkedIn update: \"%s\". It resonated with how teams like %s approach %s priorities.", quoted, company, title)
}

func (n PostCount) openerLine(company, title string) string {
	if n <= 0 {
		return "I was reviewing your work and thought it aligned with what we do."
	}
	noun := "posts"
	if n == 1 {
		noun = "post"
	}
	return fmt.Sprintf("I noticed your recent %d LinkedIn %s and the themes really stood out.", int(n), noun)
}

// Generate renders the text-evidence variant.
func Generate(fullName, orgName, position string, posts []string) string {
	return Render(fullName, orgName, position, PostTexts(posts))
}

// GenerateWithCount renders the count-evidence variant.
func GenerateWithCount(fullName, orgName, position string, postCount int) string {
	return Render(fullName, orgName, position, PostCount(postCount))
}

// Render produces the fixed three-paragraph outreach email. Missing name,
// company and title fall back to neutral wording.
func Render(fullName, orgName, position string, ev Evidence) string {
	name := orDefault(fullName, "there")
	company := orDefault(orgName, "your company")
	title := orDefault(position, "your role")

	opener := ev.openerLine(company, title)

	return fmt.Sprintf(`Hi %s,

%s I work with teams like %s to source highly targeted B2B leads and automate personalization without adding extra manual work.

If it helps, I can share a quick sample list tailored to %s targets in your market. Would you be open to a short chat this week?

Best,
`, name, opener, company, title)
}

func truncatePost(post string) string {
	runes := []rune(post)
	if len(runes) <= maxQuotedPostLen {
		return post
	}
	return string(runes[:maxQuotedPostLen]) + "…"
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
