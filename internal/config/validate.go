package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus anything a UI should
// surface before saving.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.Apify.BaseURL = strings.TrimSpace(out.Apify.BaseURL)
	out.Apify.LeadActor = strings.TrimSpace(out.Apify.LeadActor)
	out.Apify.PostActor = strings.TrimSpace(out.Apify.PostActor)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Apify.LeadActor == "" {
		res.addErr("apify.lead_actor is required")
	}
	if out.Apify.PostActor == "" {
		res.addErr("apify.post_actor is required")
	}
	if out.Apify.RunTimeoutSeconds <= 0 {
		res.addErr("apify.run_timeout_seconds must be > 0")
	} else if out.Apify.RunTimeoutSeconds < 30 {
		res.addWarn("apify.run_timeout_seconds is very low (%d); actor runs often take longer.", out.Apify.RunTimeoutSeconds)
	}

	if out.Enrich.Cap < 0 {
		res.addErr("enrich.cap must be >= 0 (0 means unlimited)")
	}
	if out.Enrich.TimeoutSeconds <= 0 {
		res.addErr("enrich.timeout_seconds must be > 0")
	}

	return out, res
}
