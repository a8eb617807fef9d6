package watch

import "strings"

// Policy is the immutable match configuration derived once at startup.
type Policy struct {
	// Keywords are normalized to lowercase. Matching walks them in order and
	// stops at the first hit, so configuration order is significant.
	Keywords []string
	// Chats restricts monitoring to the listed chats, each entry either a
	// numeric chat ID or an exact chat title. Empty means all chats.
	Chats []string
}

// NewPolicy builds a Policy from raw configuration values. Keywords are
// trimmed and lowercased, blank entries dropped; chat entries are trimmed.
func NewPolicy(keywords, chats []string) Policy {
	p := Policy{}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			p.Keywords = append(p.Keywords, kw)
		}
	}
	for _, c := range chats {
		c = strings.TrimSpace(c)
		if c != "" {
			p.Chats = append(p.Chats, c)
		}
	}
	return p
}

// MatchesChat reports whether the event's chat is in scope. Chat IDs match by
// exact string equality, titles case-insensitively. An empty chat list puts
// every chat in scope.
func (p Policy) MatchesChat(ev MessageEvent) bool {
	if len(p.Chats) == 0 {
		return true
	}
	for _, want := range p.Chats {
		if want == ev.ChatID {
			return true
		}
		if strings.EqualFold(want, ev.ChatTitle) {
			return true
		}
	}
	return false
}
