// Package alert delivers bot notifications to Slack.
package alert

import (
	"fmt"

	"github.com/slack-go/slack"
)

// Alerter sends leveled notifications about bot activity. A nil *SlackAlerter
// satisfies it as a no-op, so callers never branch on whether alerting is
// configured.
type Alerter interface {
	Info(text string) error
	Warn(text string) error
	Error(text string) error
}

// SlackAlerter posts messages to a fixed Slack channel.
type SlackAlerter struct {
	client    *slack.Client
	channelID string
}

// NewSlackAlerter returns a SlackAlerter posting to channelID with the given
// bot token.
func NewSlackAlerter(token, channelID string) *SlackAlerter {
	return &SlackAlerter{
		client:    slack.New(token),
		channelID: channelID,
	}
}

func (s *SlackAlerter) send(text string) error {
	if s == nil {
		return nil
	}
	_, _, err := s.client.PostMessage(
		s.channelID,
		slack.MsgOptionText(text, true),
	)
	return err
}

// Info sends an INFO level message.
func (s *SlackAlerter) Info(text string) error {
	return s.send(fmt.Sprintf("*`[INFO]`* %s", text))
}

// Warn sends a WARN level message.
func (s *SlackAlerter) Warn(text string) error {
	return s.send(fmt.Sprintf(":warning: *`[WARN]`* %s", text))
}

// Error sends an ERROR level message.
func (s *SlackAlerter) Error(text string) error {
	return s.send(fmt.Sprintf(":alert: *`[ERROR]`* %s", text))
}
