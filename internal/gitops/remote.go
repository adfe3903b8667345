package gitops

import (
	"fmt"
	"net/url"
)

// RemoteURL builds the hosting remote address for a repository slug.
func RemoteURL(host, slug string) string {
	return fmt.Sprintf("https://%s/%s.git", host, slug)
}

// RedactURL masks any userinfo embedded in a remote URL so credentials never
// reach logs. Unparseable input is returned unchanged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	u.User = url.User("REDACTED")
	return u.String()
}
