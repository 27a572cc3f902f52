package fields

import (
	"encoding/json"
	"testing"
)

func TestLinkFormatting(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		href   string
		target string
		rel    string
	}{
		{"null", `null`, "", "", ""},
		{"none", `{"kind": "none"}`, "", "", ""},
		{"unknown kind", `{"kind": "ftp", "url": "ftp://x"}`, "", "", ""},
		{"url", `{"kind": "url", "url": " https://example.com/a "}`, "https://example.com/a", "", ""},
		{"url new tab", `{"kind": "url", "url": "https://example.com", "newTab": true, "nofollow": true}`, "https://example.com", "_blank", "noopener noreferrer nofollow"},
		{"url nofollow", `{"kind": "url", "url": "/pricing", "nofollow": true}`, "/pricing", "", "nofollow"},
		{"url protocol relative", `{"kind": "url", "url": "//cdn.example.com/x"}`, "//cdn.example.com/x", "", ""},
		{"url javascript", `{"kind": "url", "url": "javascript:alert(1)"}`, "", "", ""},
		{"internal", `{"kind": "internal", "path": "/about", "hash": "#team"}`, "/about#team", "", ""},
		{"internal empty", `{"kind": "internal", "path": "  "}`, "/", "", ""},
		{"internal relative", `{"kind": "internal", "path": "pricing"}`, "pricing", "", ""},
		{"internal javascript", `{"kind": "internal", "path": "javascript:alert(1)"}`, "", "", ""},
		{"internal javascript mixed case", `{"kind": "internal", "path": " JavaScript:alert(1)", "hash": "x"}`, "", "", ""},
		{"internal data", `{"kind": "internal", "path": "data:text/html,<script>x</script>"}`, "", "", ""},
		{"internal other host", `{"kind": "internal", "path": "//evil.example"}`, "", "", ""},
		{"internal absolute", `{"kind": "internal", "path": "https://evil.example/"}`, "", "", ""},
		{"anchor", `{"kind": "anchor", "id": "#contact"}`, "#contact", "", ""},
		{"tel", `{"kind": "tel", "phone": "+1 (407) 555-1234"}`, "tel:+14075551234", "", ""},
		{"tel empty", `{"kind": "tel", "phone": "call us"}`, "", "", ""},
		{"mailto", `{"kind": "mailto", "email": "a@b.c", "subject": "Hi there", "body": "a&b"}`, "mailto:a@b.c?subject=Hi+there&body=a%26b", "", ""},
		{"mailto body only", `{"kind": "mailto", "email": "a@b.c", "body": "x"}`, "mailto:a@b.c?body=x", "", ""},
		{"mailto no email", `{"kind": "mailto", "subject": "x"}`, "", "", ""},
		{"internal target ignored", `{"kind": "internal", "path": "/", "newTab": true}`, "/", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			if err := json.Unmarshal([]byte(tt.src), &v); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			l := LinkFrom(v)
			if got := l.Href(); got != tt.href {
				t.Errorf("Href() = %q, want %q", got, tt.href)
			}
			if got := l.Target(); got != tt.target {
				t.Errorf("Target() = %q, want %q", got, tt.target)
			}
			if got := l.Rel(); got != tt.rel {
				t.Errorf("Rel() = %q, want %q", got, tt.rel)
			}
		})
	}
}
