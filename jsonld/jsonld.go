// Package jsonld builds structured data head entries from block fields.
package jsonld

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"sitec/site"
)

// FAQType is the block type whose "faqs" list feeds FAQPage data.
const FAQType = "faq"

type Answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

type Question struct {
	Type   string `json:"@type"`
	Name   string `json:"name"`
	Answer Answer `json:"acceptedAnswer"`
}

// FAQPage is schema.org FAQPage document.
type FAQPage struct {
	Context    string     `json:"@context"`
	Type       string     `json:"@type"`
	MainEntity []Question `json:"mainEntity"`
}

// FAQ collects question and answer pairs of all faq blocks in page order.
// Questions repeating (case-insensitively) an earlier one are dropped, as are
// pairs with empty question or answer. Returns nil when nothing is left.
func FAQ(blocks []site.Block) *FAQPage {
	var (
		fold      = cases.Fold()
		seen      = make(map[string]struct{})
		questions []Question
	)
	for _, b := range blocks {
		if b.Type != FAQType {
			continue
		}
		list, ok := b.Fields["faqs"]
		if !ok {
			continue
		}
		for _, item := range list.List() {
			q := clean(item.Map()["question"].Text())
			a := clean(item.Map()["answer"].Text())
			if q == "" || a == "" {
				continue
			}
			key := fold.String(q)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			questions = append(questions, Question{
				Type:   "Question",
				Name:   q,
				Answer: Answer{Type: "Answer", Text: a},
			})
		}
	}
	if len(questions) == 0 {
		return nil
	}
	return &FAQPage{Context: "https://schema.org", Type: "FAQPage", MainEntity: questions}
}

func clean(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
}

// Head returns script element carrying structured data for the page, empty
// string when page has nothing to describe.
func Head(blocks []site.Block) (string, error) {
	faq := FAQ(blocks)
	if faq == nil {
		return "", nil
	}
	// json.Marshal escapes <, > and &, so content can not close the script
	data, err := json.Marshal(faq)
	if err != nil {
		return "", fmt.Errorf("unable to encode structured data: %w", err)
	}
	return `<script type="application/ld+json">` + string(data) + `</script>`, nil
}
