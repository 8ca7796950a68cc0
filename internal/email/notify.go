package email

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const notificationEmailTimeout = 5 * time.Second

// Recipients trims, lowercases, and de-duplicates addresses, dropping blanks.
func Recipients(addresses ...string) []string {
	seen := make(map[string]struct{}, len(addresses))
	out := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		addr = strings.ToLower(strings.TrimSpace(addr))
		if addr == "" {
			continue
		}
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}
	return out
}

// SendAsync delivers msg to each recipient in the background. The send
// outlives ctx's cancellation but keeps its values.
func SendAsync(ctx context.Context, sender EmailSender, recipients []string, msg Message, logger *zerolog.Logger) {
	if sender == nil || len(recipients) == 0 {
		return
	}
	if msg.Subject == "" || msg.Body == "" {
		return
	}

	go func() {
		sendCtx, cancel := newEmailContext(ctx, notificationEmailTimeout*time.Duration(len(recipients)))
		defer cancel()
		if err := SendAll(sendCtx, sender, recipients, msg); err != nil && logger != nil {
			logger.Error().Err(err).Strs("recipients", recipients).Msg("Failed to send notification email")
		}
	}()
}

// SendAll sends msg to every recipient and joins the failures.
func SendAll(ctx context.Context, sender EmailSender, recipients []string, msg Message) error {
	var errs []error
	for _, recipient := range recipients {
		if err := sender.Send(ctx, recipient, msg.Subject, msg.Body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
