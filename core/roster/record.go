package roster

import "strings"

// Record is the desired state for one account, as read from the roster.
type Record struct {
	Username    string
	DisplayName string
	Email       string
	Password    string
	Quota       string
	Enabled     bool
	Groups      []string
	Subadmin    []string
}

// Valid reports whether the record can be sent to the directory at all.
// A record without a username is malformed and must be skipped.
func (r Record) Valid() bool {
	return r.Username != ""
}

// Normalize applies the username transliteration and the displayname
// fallback. Group lists are trimmed and deduplicated.
func (r Record) Normalize() Record {
	r.Username = Transliterate(strings.TrimSpace(r.Username))
	r.DisplayName = strings.TrimSpace(r.DisplayName)
	if r.DisplayName == "" {
		r.DisplayName = r.Username
	}
	r.Email = strings.TrimSpace(r.Email)
	r.Quota = strings.TrimSpace(r.Quota)
	r.Groups = cleanGroups(r.Groups)
	r.Subadmin = cleanGroups(r.Subadmin)
	return r
}

func cleanGroups(groups []string) []string {
	out := make([]string, 0, len(groups))
	seen := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}
