package decorator

// Thread is the ~thread decorator. It correlates a reply with the message
// that caused it.
type Thread struct {
	ID  string `json:"thid,omitempty"`
	PID string `json:"pthid,omitempty"`
}

// ReplyTo returns a thread decorator for a message answering the message
// with id. It returns nil for an empty id, which keeps the decorator out of
// the wire form.
func ReplyTo(id string) *Thread {
	if id == "" {
		return nil
	}
	return &Thread{ID: id}
}

// ThreadID returns the thread ID of t or an empty string if t is nil.
func ThreadID(t *Thread) string {
	if t == nil {
		return ""
	}
	return t.ID
}
