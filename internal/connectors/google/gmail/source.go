// Package gmail searches a Gmail mailbox for invoice emails.
package gmail

import (
	"context"
	"fmt"

	"google.golang.org/api/gmail/v1"

	"github.com/custodia-labs/contas/internal/connectors/google"
	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/ports/driven"
	"github.com/custodia-labs/contas/internal/logger"
)

const (
	// me addresses the authenticated user's mailbox.
	me = "me"
	// maxPageSize is the largest page messages.list returns.
	maxPageSize = 500
)

// Verify interface compliance.
var _ driven.MailSource = (*Source)(nil)

// Source implements driven.MailSource over the Gmail API.
type Source struct {
	svc     *gmail.Service
	limiter *google.RateLimiter
}

// NewSource creates a mailbox source.
func NewSource(svc *gmail.Service) *Source {
	return &Source{
		svc:     svc,
		limiter: google.NewRateLimiter(google.ServiceGmail),
	}
}

// Search lists up to limit messages matching query, newest first, and reads
// their From and Subject headers. Spam and trash are left out.
func (s *Source) Search(ctx context.Context, query string, limit int64) ([]domain.MailMessage, error) {
	if limit <= 0 {
		return []domain.MailMessage{}, nil
	}

	ids, err := s.list(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	logger.Debug("gmail: %d messages match %q", len(ids), query)

	messages := make([]domain.MailMessage, 0, len(ids))
	for _, id := range ids {
		msg, err := s.get(ctx, id)
		if google.IsNotFound(err) {
			// Deleted between list and get.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get message %s: %w", id, err)
		}
		if isSpamOrTrash(msg.LabelIds) {
			continue
		}
		messages = append(messages, ToMailMessage(msg))
	}
	return messages, nil
}

func (s *Source) list(ctx context.Context, query string, limit int64) ([]string, error) {
	var ids []string
	pageToken := ""

	for int64(len(ids)) < limit {
		call := s.svc.Users.Messages.List(me).
			Q(query).
			MaxResults(min(limit-int64(len(ids)), maxPageSize)).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		var resp *gmail.ListMessagesResponse
		err := s.limiter.Do(ctx, func() error {
			var err error
			resp, err = call.Do()
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("list messages: %w", err)
		}

		for _, m := range resp.Messages {
			if int64(len(ids)) == limit {
				break
			}
			ids = append(ids, m.Id)
		}
		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}
	return ids, nil
}

func (s *Source) get(ctx context.Context, id string) (*gmail.Message, error) {
	var msg *gmail.Message
	err := s.limiter.Do(ctx, func() error {
		var err error
		msg, err = s.svc.Users.Messages.Get(me, id).
			Format("metadata").
			MetadataHeaders(metadataHeaders...).
			Context(ctx).
			Do()
		return err
	})
	return msg, err
}
