package gmail

import (
	"html"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"

	"github.com/custodia-labs/contas/internal/core/domain"
)

// metadataHeaders are the only headers requested per message.
var metadataHeaders = []string{"From", "Subject"}

// ToMailMessage converts a metadata-format Gmail message.
func ToMailMessage(msg *gmail.Message) domain.MailMessage {
	out := domain.MailMessage{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		// Gmail HTML-escapes snippets.
		Snippet: strings.TrimSpace(html.UnescapeString(msg.Snippet)),
	}
	if msg.InternalDate > 0 {
		out.ReceivedAt = time.UnixMilli(msg.InternalDate)
	}
	if msg.Payload != nil {
		out.From = header(msg.Payload.Headers, "From")
		out.Subject = header(msg.Payload.Headers, "Subject")
	}
	return out
}

func header(headers []*gmail.MessagePartHeader, name string) string {
	for _, h := range headers {
		if h != nil && strings.EqualFold(h.Name, name) {
			return strings.TrimSpace(h.Value)
		}
	}
	return ""
}

// isSpamOrTrash checks if the message has spam or trash labels.
func isSpamOrTrash(labels []string) bool {
	for _, label := range labels {
		if label == "SPAM" || label == "TRASH" {
			return true
		}
	}
	return false
}
