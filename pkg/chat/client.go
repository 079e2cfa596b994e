// Package chat implements the chat session client: the conversation log, the
// open/close and greeting state, quick replies, and the single JSON
// request/response exchange with the remote chat endpoint.
package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"yoi_chat/pkg/store"
)

// Client holds one conversation. All methods are safe for concurrent use;
// each exchange runs on the caller's goroutine.
type Client struct {
	transport Transport
	store     store.Store
	logger    *slog.Logger

	greeting      string
	greetingDelay time.Duration
	apology       string
	quickReplies  []QuickReply
	afterFunc     func(time.Duration, func())

	mu                  sync.Mutex
	open                bool
	greeted             bool
	quickRepliesVisible bool
	language            string
	sessionID           string
	entries             []Entry
	nextID              uint64

	changes chan struct{}
}

// NewClient creates a client and restores the session identifier persisted
// in st, if any. A store read failure is logged and the client starts
// without a session.
func NewClient(ctx context.Context, transport Transport, st store.Store, opts ...Option) (*Client, error) {
	if transport == nil {
		return nil, errors.New("chat transport is required")
	}
	if st == nil {
		return nil, errors.New("chat session store is required")
	}

	c := &Client{
		transport:     transport,
		store:         st,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		greeting:      DefaultGreeting,
		greetingDelay: DefaultGreetingDelay,
		apology:       DefaultApology,
		quickReplies:  DefaultQuickReplies(),
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		language: DefaultLanguage,
		changes:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}

	id, ok, err := st.Get(ctx, store.SessionIDKey)
	switch {
	case err != nil:
		c.logger.Warn("failed to restore session id", "error", err)
	case ok && id != "":
		c.sessionID = id
		c.logger.Debug("restored session", "session_id", id)
	}

	return c, nil
}

// Open reveals the conversation panel. The first call schedules the greeting
// and the quick replies; later calls only reveal the panel again.
func (c *Client) Open() {
	c.mu.Lock()
	c.open = true
	first := !c.greeted
	c.greeted = true
	c.mu.Unlock()

	c.notify()
	if first {
		c.afterFunc(c.greetingDelay, c.greet)
	}
}

func (c *Client) greet() {
	c.mu.Lock()
	c.appendLocked(Entry{Kind: EntryMessage, Message: Message{Role: RoleBot, Text: c.greeting, Origin: OriginLocal}})
	c.quickRepliesVisible = len(c.quickReplies) > 0
	c.mu.Unlock()

	c.notify()
}

// Close hides the conversation panel. Requests in flight are not affected.
func (c *Client) Close() {
	c.mu.Lock()
	c.open = false
	c.mu.Unlock()

	c.notify()
}

// SendMessage sends text and waits for the exchange to finish. It returns
// false, doing nothing, when text is blank. Failures are not returned: they
// end up in the log as the apology message.
func (c *Client) SendMessage(ctx context.Context, text string) bool {
	p, ok := c.Begin(text)
	if !ok {
		return false
	}
	p.Complete(ctx)
	return true
}

// QuickReply sends the message of the quick reply at index and hides the
// quick-reply set. It returns false for an unknown index.
func (c *Client) QuickReply(ctx context.Context, index int) bool {
	p, ok := c.BeginQuickReply(index)
	if !ok {
		return false
	}
	p.Complete(ctx)
	return true
}

// BeginQuickReply is the non-blocking half of QuickReply.
func (c *Client) BeginQuickReply(index int) (*Pending, bool) {
	if index < 0 || index >= len(c.quickReplies) {
		return nil, false
	}
	p, ok := c.Begin(c.quickReplies[index].Message)

	c.mu.Lock()
	c.quickRepliesVisible = false
	c.mu.Unlock()
	c.notify()

	return p, ok
}

// Begin performs the synchronous half of a send: it appends the user
// message, hides the quick replies and inserts a typing indicator. The
// returned Pending carries the request; call Complete to run it.
func (c *Client) Begin(text string) (*Pending, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	c.mu.Lock()
	c.appendLocked(Entry{Kind: EntryMessage, Message: Message{Role: RoleUser, Text: text, Origin: OriginLocal}})
	c.quickRepliesVisible = false
	typingID := c.appendLocked(Entry{Kind: EntryTyping})

	req := Request{Message: text, Language: c.language}
	if c.sessionID != "" {
		id := c.sessionID
		req.SessionID = &id
	}
	c.mu.Unlock()

	c.notify()
	return &Pending{client: c, request: req, typingID: typingID}, true
}

// Pending is a request whose user message and typing indicator are already
// in the log.
type Pending struct {
	client   *Client
	request  Request
	typingID uint64

	once  sync.Once
	reply Message
}

// Request returns the body that will be (or was) posted.
func (p *Pending) Request() Request {
	return p.request
}

// Complete runs the exchange and commits its outcome: the reply, or the
// apology on failure. Calling it again returns the first outcome.
func (p *Pending) Complete(ctx context.Context) Message {
	p.once.Do(func() {
		resp, err := p.client.transport.Exchange(ctx, p.request)
		p.reply = p.client.finish(ctx, p, resp, err)
	})
	return p.reply
}

func (c *Client) finish(ctx context.Context, p *Pending, resp Response, err error) Message {
	var (
		reply     Message
		persistID string
	)

	c.mu.Lock()
	c.removeLocked(p.typingID)
	if err != nil {
		reply = Message{Role: RoleBot, Text: c.apology, Origin: OriginLocal}
	} else {
		if resp.Language != "" {
			c.language = resp.Language
		}
		if resp.SessionID != "" {
			// Persisted on every response, changed or not.
			c.sessionID = resp.SessionID
			persistID = resp.SessionID
		}
		reply = Message{Role: RoleBot, Text: resp.Reply, Origin: OriginRemote}
	}
	c.appendLocked(Entry{Kind: EntryMessage, Message: reply})
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("chat exchange failed", "error", err)
	} else {
		c.logger.Debug("chat exchange completed",
			"reply_length", len(resp.Reply),
			"language", resp.Language,
			"session_id", resp.SessionID)
	}

	if persistID != "" {
		// The reply is already committed; a cancelled caller must not lose the id.
		if err := c.store.Set(context.WithoutCancel(ctx), store.SessionIDKey, persistID); err != nil {
			c.logger.Warn("failed to persist session id", "error", err, "session_id", persistID)
		}
	}

	c.notify()
	return reply
}

func (c *Client) appendLocked(e Entry) uint64 {
	c.nextID++
	e.id = c.nextID
	c.entries = append(c.entries, e)
	return e.id
}

func (c *Client) removeLocked(id uint64) {
	for i, e := range c.entries {
		if e.id == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

// notify wakes a listener on Changes without blocking; bursts coalesce.
func (c *Client) notify() {
	select {
	case c.changes <- struct{}{}:
	default:
	}
}

// Changes delivers a value after state changes. Slow readers see one
// value for any number of changes.
func (c *Client) Changes() <-chan struct{} {
	return c.changes
}

// Entries returns the rendered sequence, typing indicators included.
func (c *Client) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Messages returns the committed conversation log in arrival order.
func (c *Client) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Message, 0, len(c.entries))
	for _, e := range c.entries {
		if e.Kind == EntryMessage {
			out = append(out, e.Message)
		}
	}
	return out
}

// LastReply returns the text of the most recent bot message.
func (c *Client) LastReply() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := len(c.entries) - 1; i >= 0; i-- {
		e := c.entries[i]
		if e.Kind == EntryMessage && e.Message.Role == RoleBot {
			return e.Message.Text, true
		}
	}
	return "", false
}

// IsOpen reports whether the panel is visible.
func (c *Client) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// QuickReplies returns the configured quick-reply set.
func (c *Client) QuickReplies() []QuickReply {
	return append([]QuickReply(nil), c.quickReplies...)
}

// QuickRepliesVisible reports whether the quick-reply set is shown.
func (c *Client) QuickRepliesVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quickRepliesVisible
}

// PendingCount reports how many exchanges are still in flight.
func (c *Client) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, e := range c.entries {
		if e.Kind == EntryTyping {
			n++
		}
	}
	return n
}

// Language returns the language sent with the next request.
func (c *Client) Language() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language
}

// SessionID returns the current session identifier, if one is assigned.
func (c *Client) SessionID() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID, c.sessionID != ""
}
