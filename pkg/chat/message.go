package chat

// Role identifies who authored a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Origin records where a message's text came from. Local text (the greeting,
// the apology) is trusted markup; remote text is whatever the endpoint sent.
type Origin int

const (
	OriginLocal Origin = iota
	OriginRemote
)

// Message is one committed entry of the conversation log.
type Message struct {
	Role   Role
	Text   string
	Origin Origin
}

// EntryKind distinguishes committed messages from transient placeholders.
type EntryKind int

const (
	EntryMessage EntryKind = iota
	EntryTyping
)

// Entry is one row of the rendered conversation: either a committed message
// or a typing indicator for a request still in flight.
type Entry struct {
	Kind    EntryKind
	Message Message
	id      uint64
}

// IsTyping reports whether the entry is a typing indicator.
func (e Entry) IsTyping() bool {
	return e.Kind == EntryTyping
}
