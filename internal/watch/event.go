package watch

// AlertKind classifies what triggered an alert.
type AlertKind int

const (
	ImageDetected AlertKind = iota
	KeywordMatch
)

func (k AlertKind) String() string {
	switch k {
	case ImageDetected:
		return "image"
	case KeywordMatch:
		return "keyword"
	default:
		return "unknown"
	}
}

// MessageEvent is one incoming message as seen by the watcher. Events are
// ephemeral: they are evaluated and discarded, never stored.
type MessageEvent struct {
	ChatID     string
	ChatTitle  string // "Private Chat" when the chat has no title
	SenderName string // "Unknown" when the sender has no display name
	Text       string // message text or media caption, may be empty
	HasImage   bool
}

// AlertRecord is a single policy match, produced by the filter and
// immediately handed to the dispatcher.
type AlertRecord struct {
	Kind           AlertKind
	MatchedKeyword string // set only for KeywordMatch
	ChatTitle      string
	SenderName     string
	Text           string // message text, or image caption ("[No Caption]" when absent)
}
