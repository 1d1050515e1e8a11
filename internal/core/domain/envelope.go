package domain

import "io"

type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Envelope is the outbound reply, built once per invocation.
type Envelope struct {
	Title       string
	Description string
	Fields      []Field
	Image       string
	Footer      string
	Color       int
}

func NewEnvelope(title, description string) Envelope {
	return Envelope{Title: title, Description: description}
}

func (e Envelope) AddField(name, value string, inline bool) Envelope {
	fields := make([]Field, len(e.Fields), len(e.Fields)+1)
	copy(fields, e.Fields)
	e.Fields = append(fields, Field{Name: name, Value: value, Inline: inline})
	return e
}

// WithArtifact references an image artifact through its attachment filename.
// Documents are sent as plain attachments and leave the envelope untouched.
func (e Envelope) WithArtifact(a *Artifact) Envelope {
	if a == nil || a.Kind != Image {
		return e
	}
	e.Image = AttachmentPrefix + a.Filename
	return e
}

// ErrorEnvelope is a single-line reply: no fields, no attachment.
func ErrorEnvelope(title, message string) Envelope {
	return Envelope{Title: title, Description: message}
}

// Attachment is an opened artifact ready to be uploaded alongside a reply.
type Attachment struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}
