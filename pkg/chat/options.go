package chat

import (
	"log/slog"
	"time"
)

// Defaults carried over from the embeddable widget.
const (
	DefaultGreeting      = "👋 Hi! I'm <strong>YOI Bot</strong>. I'm here to help you learn about YOI Media's services and solutions. How can I assist you today?"
	DefaultApology       = "⚠️ I'm having trouble connecting. Please try again!"
	DefaultLanguage      = "en"
	DefaultGreetingDelay = 300 * time.Millisecond
)

// QuickReply is a predefined message the user can pick instead of typing.
type QuickReply struct {
	Label   string
	Message string
}

// DefaultQuickReplies returns the suggestions shown under the greeting.
func DefaultQuickReplies() []QuickReply {
	return []QuickReply{
		{Label: "🎯 Our Services", Message: "What services does YOI offer?"},
		{Label: "💼 Business Solutions", Message: "How can YOI help my business?"},
		{Label: "🤖 AI Solutions", Message: "Tell me about YOI's AI solutions"},
	}
}

// Option configures a Client.
type Option func(*Client)

// WithGreeting replaces the first-open greeting.
func WithGreeting(text string) Option {
	return func(c *Client) {
		c.greeting = text
	}
}

// WithGreetingDelay sets how long after the first Open the greeting appears.
func WithGreetingDelay(d time.Duration) Option {
	return func(c *Client) {
		c.greetingDelay = d
	}
}

// WithApology replaces the message shown when an exchange fails.
func WithApology(text string) Option {
	return func(c *Client) {
		c.apology = text
	}
}

// WithQuickReplies replaces the quick-reply set. An empty set disables it.
func WithQuickReplies(replies ...QuickReply) Option {
	return func(c *Client) {
		c.quickReplies = append([]QuickReply(nil), replies...)
	}
}

// WithLanguage sets the language sent until the endpoint picks another.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.language = lang
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithAfterFunc replaces the timer used to schedule the greeting.
// Tests pass a function that runs f immediately.
func WithAfterFunc(after func(d time.Duration, f func())) Option {
	return func(c *Client) {
		if after != nil {
			c.afterFunc = after
		}
	}
}
