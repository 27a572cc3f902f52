package fields

import (
	"net/url"
	"strings"

	"sitec/common"
)

// Link is a typed link value as stored in block fields.
type Link struct {
	Kind     common.LinkKind
	URL      string
	NewTab   bool
	Nofollow bool
	Path     string
	Hash     string
	ID       string
	Phone    string
	Email    string
	Subject  string
	Body     string
}

// LinkFrom interprets field value as a link. Anything that is not an object
// with a known kind is treated as no link.
func LinkFrom(v Value) Link {
	m := v.Map()
	if m == nil {
		return Link{Kind: common.LinkKindNone}
	}
	kind, err := common.ParseLinkKind(m["kind"].Text())
	if err != nil {
		return Link{Kind: common.LinkKindNone}
	}
	return Link{
		Kind:     kind,
		URL:      m["url"].Text(),
		NewTab:   m["newTab"].Truthy(),
		Nofollow: m["nofollow"].Truthy(),
		Path:     m["path"].Text(),
		Hash:     m["hash"].Text(),
		ID:       m["id"].Text(),
		Phone:    m["phone"].Text(),
		Email:    m["email"].Text(),
		Subject:  m["subject"].Text(),
		Body:     m["body"].Text(),
	}
}

// Href formats link destination. Returns empty string when there is nothing
// to link to.
func (l Link) Href() string {
	switch l.Kind {
	case common.LinkKindUrl:
		u := strings.TrimSpace(l.URL)
		if !safeURL(u) {
			return ""
		}
		return u
	case common.LinkKindInternal:
		path := strings.TrimSpace(l.Path)
		if path == "" {
			path = "/"
		}
		if !localPath(path) {
			return ""
		}
		if l.Hash != "" {
			path += "#" + strings.TrimPrefix(l.Hash, "#")
		}
		return path
	case common.LinkKindAnchor:
		return "#" + strings.TrimPrefix(l.ID, "#")
	case common.LinkKindTel:
		phone := strings.Map(func(r rune) rune {
			if r == '+' || (r >= '0' && r <= '9') {
				return r
			}
			return -1
		}, l.Phone)
		if phone == "" {
			return ""
		}
		return "tel:" + phone
	case common.LinkKindMailto:
		email := strings.TrimSpace(l.Email)
		if email == "" {
			return ""
		}
		var q []string
		if l.Subject != "" {
			q = append(q, "subject="+url.QueryEscape(l.Subject))
		}
		if l.Body != "" {
			q = append(q, "body="+url.QueryEscape(l.Body))
		}
		if len(q) == 0 {
			return "mailto:" + email
		}
		return "mailto:" + email + "?" + strings.Join(q, "&")
	default:
		return ""
	}
}

// Target is "_blank" for external links opening in a new tab.
func (l Link) Target() string {
	if l.Kind == common.LinkKindUrl && l.NewTab {
		return "_blank"
	}
	return ""
}

// Rel lists link relations for external links.
func (l Link) Rel() string {
	if l.Kind != common.LinkKindUrl {
		return ""
	}
	var rel []string
	if l.NewTab {
		rel = append(rel, "noopener", "noreferrer")
	}
	if l.Nofollow {
		rel = append(rel, "nofollow")
	}
	return strings.Join(rel, " ")
}

// only http(s), protocol relative and relative references are allowed for
// external links, javascript: and friends are dropped.
func safeURL(s string) bool {
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "//") {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https":
		return true
	default:
		return false
	}
}

// localPath accepts references staying on the same site: no scheme, no host.
func localPath(s string) bool {
	if strings.HasPrefix(s, "//") || strings.HasPrefix(s, `\`) {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.Scheme == "" && u.Host == ""
}
