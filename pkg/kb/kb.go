// Package kb holds the offline accessibility knowledge base: curated
// WCAG reference articles answerable without spending API quota.
package kb

import (
	"sort"
	"strings"
)

// Article is one curated knowledge base entry.
type Article struct {
	Topic    string
	Question string
	Answer   string
}

// keywordTopics maps trigger keywords to article topics, so loose
// phrasings ("ratio", "focus") still hit the right article.
var keywordTopics = map[string]string{
	"contrast":         "color contrast",
	"ratio":            "color contrast",
	"alt":              "alt text",
	"alternative text": "alt text",
	"keyboard":         "keyboard navigation",
	"tab":              "keyboard navigation",
	"focus":            "keyboard navigation",
	"form":             "forms",
	"input":            "forms",
	"label":            "forms",
}

// Base is an in-memory article collection with topic and keyword lookup.
type Base struct {
	articles map[string]Article
}

// New returns the built-in knowledge base.
func New() *Base {
	b := &Base{articles: make(map[string]Article, len(builtinArticles))}
	for _, a := range builtinArticles {
		b.articles[a.Topic] = a
	}
	return b
}

// Lookup finds an article matching the question, first by topic
// substring, then by trigger keyword. Returns nil when nothing matches.
func (b *Base) Lookup(question string) *Article {
	q := strings.ToLower(question)

	for topic := range b.articles {
		if strings.Contains(q, topic) {
			a := b.articles[topic]
			return &a
		}
	}

	for keyword, topic := range keywordTopics {
		if strings.Contains(q, keyword) {
			if a, ok := b.articles[topic]; ok {
				return &a
			}
		}
	}

	return nil
}

// Get returns the article for an exact topic, or nil.
func (b *Base) Get(topic string) *Article {
	if a, ok := b.articles[strings.ToLower(strings.TrimSpace(topic))]; ok {
		return &a
	}
	return nil
}

// Topics lists available article topics in stable order.
func (b *Base) Topics() []string {
	topics := make([]string, 0, len(b.articles))
	for t := range b.articles {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	return topics
}

// Articles returns all articles in topic order.
func (b *Base) Articles() []Article {
	topics := b.Topics()
	out := make([]Article, 0, len(topics))
	for _, t := range topics {
		out = append(out, b.articles[t])
	}
	return out
}

// GeneralResources is the fallback reference served when the remote
// service is unavailable or over quota.
const GeneralResources = `**Common Accessibility Resources:**

- **WCAG 2.1 Guidelines**: https://www.w3.org/WAI/WCAG21/quickref/
- **WebAIM**: https://webaim.org/ (excellent tutorials and tools)
- **a11y Project**: https://www.a11yproject.com/ (practical checklist)
- **MDN Accessibility**: https://developer.mozilla.org/en-US/docs/Web/Accessibility

For specific questions, try the built-in topics (/kb) or ask again later.`
