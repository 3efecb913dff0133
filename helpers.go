package carmuseum

import (
	"net/url"
	"path"
)

// siteLink joins path segments onto the site URL. The result is always
// rooted, so siteLink(base) is the home page.
func siteLink(base string, segments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	parts := append([]string{"/", u.Path}, segments...)
	u.Path = path.Join(parts...)
	u.RawPath = ""
	return u.String()
}
