package prompts

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	PlaceholderCount   = "{count}"
	PlaceholderTopic   = "{topic}"
	PlaceholderCompany = "{company}"
)

// brandDiscoveryShare is the fraction of a prompt batch generated as
// brand-discovery prompts; the remainder is organic-mention.
const brandDiscoveryShare = 0.7

var placeholderRe = regexp.MustCompile(`\{[a-zA-Z_]+\}`)

// Params are the values substituted into a template. Empty Topic or Company
// leave their placeholders untouched.
type Params struct {
	Count   int
	Topic   string
	Company string
}

// Fill replaces every occurrence of {count}, {topic} and {company} in tpl.
// Substitution is single-pass, so values containing placeholder text are not
// expanded again.
func Fill(tpl string, p Params) string {
	pairs := []string{PlaceholderCount, strconv.Itoa(p.Count)}
	if p.Topic != "" {
		pairs = append(pairs, PlaceholderTopic, p.Topic)
	}
	if p.Company != "" {
		pairs = append(pairs, PlaceholderCompany, p.Company)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

// FillCount replaces only {count}.
func FillCount(tpl string, count int) string {
	return strings.ReplaceAll(tpl, PlaceholderCount, strconv.Itoa(count))
}

// Unknown lists placeholder-looking tokens in tpl that are not in allowed, in
// order of first appearance.
func Unknown(tpl string, allowed ...string) []string {
	var out []string
	seen := map[string]bool{}
	for _, tok := range placeholderRe.FindAllString(tpl, -1) {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		known := false
		for _, a := range allowed {
			if tok == a {
				known = true
				break
			}
		}
		if !known {
			out = append(out, tok)
		}
	}
	return out
}

// Split divides total into brand-discovery and organic-mention counts. The two
// parts always sum to total.
func Split(total int) (brandDiscovery, organic int) {
	brandDiscovery = int(math.Round(float64(total) * brandDiscoveryShare))
	return brandDiscovery, total - brandDiscovery
}
