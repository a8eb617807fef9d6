package watch

import (
	"fmt"
	"strings"
	"time"
)

const alertHeader = "🚨 Telegram Watcher Alert!"

// FormatAlert renders one alert record as the human-readable message sent to
// the notification provider.
func FormatAlert(rec AlertRecord) string {
	var b strings.Builder
	b.WriteString(alertHeader)
	b.WriteByte('\n')

	switch rec.Kind {
	case ImageDetected:
		b.WriteString("Type: Image Detected 📸\n")
		fmt.Fprintf(&b, "Chat: %s\n", rec.ChatTitle)
		fmt.Fprintf(&b, "User: %s\n", rec.SenderName)
		fmt.Fprintf(&b, "Caption: %s", rec.Text)
	case KeywordMatch:
		b.WriteString("Type: Keyword Match 💬\n")
		fmt.Fprintf(&b, "Keyword: %s\n", rec.MatchedKeyword)
		fmt.Fprintf(&b, "Chat: %s\n", rec.ChatTitle)
		fmt.Fprintf(&b, "User: %s\n", rec.SenderName)
		fmt.Fprintf(&b, "Message: %s", rec.Text)
	default:
		fmt.Fprintf(&b, "Type: %s\n", rec.Kind)
		fmt.Fprintf(&b, "Chat: %s\n", rec.ChatTitle)
		fmt.Fprintf(&b, "User: %s\n", rec.SenderName)
		fmt.Fprintf(&b, "Message: %s", rec.Text)
	}

	return b.String()
}

// FormatDigest renders a periodic status summary.
func FormatDigest(label string, sum Summary) string {
	return fmt.Sprintf(
		"ℹ️ Telegram Watcher %s Summary\n"+
			"Status: Running ✅\n"+
			"Uptime: %s\n"+
			"Messages Scanned: %d\n"+
			"Alerts Sent: %d",
		label, formatUptime(sum.Uptime), sum.MessagesSeen, sum.AlertsSent)
}

func formatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return d.Round(time.Second).String()
}
