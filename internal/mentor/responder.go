package mentor

import "strings"

const (
	FocusRedirectReply = "Tranquilo. Simplifica: elegí UNA tarea y trabajala 25 minutos sin interrupciones. Yo te aviso cuando termine."
	ScheduleOfferReply = "Perfecto. ¿Querés que arme un bloque de 50 minutos para esa tarea?"
)

// Rule matches against the lower-cased question.
type Rule struct {
	Name  string
	Match func(lowered string) bool
	Reply string
}

// ContainsAny builds a matcher for any of the given substrings.
func ContainsAny(markers ...string) func(string) bool {
	return func(lowered string) bool {
		for _, m := range markers {
			if strings.Contains(lowered, m) {
				return true
			}
		}
		return false
	}
}

func DefaultRules() []Rule {
	return []Rule{
		{Name: "distraction", Match: ContainsAny("distrag", "procrast"), Reply: FocusRedirectReply},
	}
}

// Responder evaluates rules top to bottom; the first match wins.
type Responder struct {
	rules    []Rule
	fallback string
}

func NewResponder(rules []Rule, fallback string) *Responder {
	if fallback == "" {
		fallback = ScheduleOfferReply
	}
	return &Responder{rules: append([]Rule(nil), rules...), fallback: fallback}
}

func NewDefaultResponder() *Responder {
	return NewResponder(DefaultRules(), ScheduleOfferReply)
}

// Reply returns the canned answer and the name of the rule that produced it
// ("fallback" when none matched).
func (r *Responder) Reply(question string) (string, string) {
	lowered := strings.ToLower(question)
	for _, rule := range r.rules {
		if rule.Match != nil && rule.Match(lowered) {
			return rule.Reply, rule.Name
		}
	}
	return r.fallback, "fallback"
}
