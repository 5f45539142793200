package reviews

import (
	"context"
	"fmt"
	"strings"
)

const shareTemplate = "review_share.tmpl"

type shareEmailData struct {
	Title string
	Text  string
}

// ShareText renders a plain-text summary of the review suitable for pasting
// into a chat or an email.
func (s *Store) ShareText(ctx context.Context, title string) (string, error) {
	review := s.GetReview(ctx, title)
	if review.Rating == 0 && len(review.SelectedEmojis) == 0 {
		return "", ErrNothingToShare
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🎬 %s\n", title)
	if review.Rating > 0 {
		fmt.Fprintf(&b, "⭐ Rating: %d/5 stars\n", review.Rating)
	}
	if len(review.SelectedEmojis) > 0 {
		fmt.Fprintf(&b, "Reactions: %s\n", strings.Join(review.SelectedEmojis, " "))
	}
	if review.IsWatched && review.DateWatched != nil {
		fmt.Fprintf(&b, "✓ Watched on %s\n", review.DateWatched.Format("Jan 02, 2006"))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// Share renders the share text and, when recipient is set, queues it to be
// mailed in the background.
func (s *Store) Share(ctx context.Context, title, recipient string) (string, error) {
	const op = "reviews.Store.Share"
	text, err := s.ShareText(ctx, title)
	if err != nil {
		return "", err
	}
	if recipient == "" {
		return text, nil
	}
	if s.mailer == nil || s.tasks == nil {
		return "", ErrMailerNotConfigured
	}
	log := s.log.With("op", op, "title", title)
	data := shareEmailData{Title: title, Text: text}
	s.tasks.Add(func() {
		if err := s.mailer.Send(recipient, shareTemplate, data); err != nil {
			log.Error("failed to send review email", "errMsg", err.Error())
			return
		}
		log.Info("review email sent")
	})
	return text, nil
}
