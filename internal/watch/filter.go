package watch

import "strings"

// NoCaption is the placeholder used when an image arrives without text.
const NoCaption = "[No Caption]"

// Evaluate applies the policy to a single event and returns the alerts it
// produces: zero when the event is out of scope or matches nothing, one image
// alert when the event carries a photo, and at most one keyword alert
// (first configured keyword wins). It is a pure function; counters are the
// caller's business.
func Evaluate(ev MessageEvent, p Policy) []AlertRecord {
	if !p.MatchesChat(ev) {
		return nil
	}

	var alerts []AlertRecord

	if ev.HasImage {
		caption := ev.Text
		if caption == "" {
			caption = NoCaption
		}
		alerts = append(alerts, AlertRecord{
			Kind:       ImageDetected,
			ChatTitle:  ev.ChatTitle,
			SenderName: ev.SenderName,
			Text:       caption,
		})
	}

	if ev.Text != "" {
		lower := strings.ToLower(ev.Text)
		for _, kw := range p.Keywords {
			if strings.Contains(lower, kw) {
				alerts = append(alerts, AlertRecord{
					Kind:           KeywordMatch,
					MatchedKeyword: kw,
					ChatTitle:      ev.ChatTitle,
					SenderName:     ev.SenderName,
					Text:           ev.Text,
				})
				break
			}
		}
	}

	return alerts
}
