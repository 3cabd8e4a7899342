package form

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how far a typed domain may be from a known one
// before it is treated as intentional. Short domains only get one edit.
const (
	maxSuggestDistance      = 2
	shortDomainLen          = 8
	maxShortSuggestDistance = 1
)

// realDomains are providers that sit close to a common domain but are not typos.
var realDomains = map[string]struct{}{
	"mac.com":      {},
	"mail.com":     {},
	"gmx.com":      {},
	"gmx.net":      {},
	"msn.com":      {},
	"ymail.com":    {},
	"email.com":    {},
	"zoho.com":     {},
	"yandex.com":   {},
	"fastmail.com": {},
}

var commonDomains = []string{
	"gmail.com",
	"googlemail.com",
	"yahoo.com",
	"hotmail.com",
	"outlook.com",
	"live.com",
	"icloud.com",
	"me.com",
	"aol.com",
	"proton.me",
	"protonmail.com",
	"bigpond.com",
}

// SuggestEmail returns a corrected address when the domain of email looks like
// a typo of a common provider. It only offers a hint; Validate ignores it.
func SuggestEmail(email string) (string, bool) {
	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) {
		return "", false
	}
	at := strings.LastIndex(email, "@")
	local, domain := email[:at], strings.ToLower(email[at+1:])
	if local == "" || domain == "" {
		return "", false
	}
	if _, ok := realDomains[domain]; ok {
		return "", false
	}

	limit := maxSuggestDistance
	if len(domain) < shortDomainLen {
		limit = maxShortSuggestDistance
	}
	best, bestDist := "", limit+1
	for _, d := range commonDomains {
		if d == domain {
			return "", false
		}
		if dist := levenshtein.ComputeDistance(domain, d); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	if best == "" {
		return "", false
	}
	return local + "@" + best, true
}
