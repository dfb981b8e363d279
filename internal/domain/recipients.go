package domain

import (
	"encoding/json"
	"strings"
)

// Recipients is a list of invitee email addresses. It unmarshals from either
// a JSON array of strings or a single comma-separated string, so both request
// shapes normalize to the same set.
type Recipients []string

func (r *Recipients) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = SplitRecipients(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*r = list
	return nil
}

// SplitRecipients splits a comma-separated recipient string and trims
// whitespace around each address. Empty entries are dropped.
func SplitRecipients(s string) []string {
	parts := strings.Split(s, ",")
	emails := make([]string, 0, len(parts))
	for _, p := range parts {
		if e := strings.TrimSpace(p); e != "" {
			emails = append(emails, e)
		}
	}
	return emails
}
