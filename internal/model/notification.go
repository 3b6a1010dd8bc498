// Package model defines the core data structures for filament.
package model

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"
)

// Urgency levels matching the freedesktop notification spec.
const (
	UrgencyLow      = 0
	UrgencyNormal   = 1
	UrgencyCritical = 2
)

// UrgencyNames maps urgency levels to human-readable names.
var UrgencyNames = map[int]string{
	UrgencyLow:      "low",
	UrgencyNormal:   "normal",
	UrgencyCritical: "critical",
}

// Validation errors.
var (
	ErrEmptyID        = errors.New("notification id cannot be empty")
	ErrInvalidUrgency = errors.New("urgency must be 0, 1, or 2")
)

// Action represents a notification action with key and label.
type Action struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Notification is the normalized content record consumed by the layout
// engine. It is read-only once handed to a popup window; the engine
// never mutates it.
type Notification struct {
	// ID is a generated ULID, stable for the lifetime of the record.
	ID string `json:"id"`
	// BusID is the numeric id assigned when the notification arrived
	// over D-Bus. Zero for internally generated notifications.
	BusID uint32 `json:"bus_id"`

	AppName string `json:"app_name"`
	Summary string `json:"summary"`
	Body    string `json:"body"`

	// AppImage is the resolved path of the sender's application image
	// (app_icon field or desktop-entry icon). Empty when absent.
	AppImage string `json:"app_image,omitempty"`
	// HintImage is the resolved path of an image supplied through the
	// image-path/image-data hints. Empty when absent.
	HintImage string `json:"hint_image,omitempty"`

	Urgency int `json:"urgency"`
	// Progress is a 0-100 percentage from the value hint, -1 when unset.
	Progress int `json:"progress"`

	// Timeout is the requested expiry in milliseconds. -1 means use the
	// server default for the urgency; 0 means never expire.
	Timeout int32 `json:"timeout"`

	Actions    []Action  `json:"actions,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}

// New creates a Notification with a generated ULID and normal urgency.
func New() (*Notification, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ULID: %w", err)
	}

	return &Notification{
		ID:         id.String(),
		Urgency:    UrgencyNormal,
		Progress:   -1,
		Timeout:    -1,
		ReceivedAt: time.Now(),
	}, nil
}

// Validate checks that the notification has the required fields.
func (n *Notification) Validate() error {
	if n.ID == "" {
		return ErrEmptyID
	}
	if n.Urgency < UrgencyLow || n.Urgency > UrgencyCritical {
		return ErrInvalidUrgency
	}
	return nil
}

// SetUrgency sets the urgency level, coercing out-of-range values to normal.
func (n *Notification) SetUrgency(level int) {
	if level < UrgencyLow || level > UrgencyCritical {
		level = UrgencyNormal
	}
	n.Urgency = level
}

// UrgencyName returns the human-readable urgency name.
func (n *Notification) UrgencyName() string {
	return UrgencyNames[n.Urgency]
}

// HasAppImage reports whether an application image is available.
func (n *Notification) HasAppImage() bool { return n.AppImage != "" }

// HasHintImage reports whether a hint image is available.
func (n *Notification) HasHintImage() bool { return n.HintImage != "" }

// Expand substitutes notification fields into a block text template.
//
// Recognized tokens:
//
//	%s  summary
//	%b  body
//	%a  app name
//	%i  bus id
//	%p  progress percentage (empty when no progress hint was given)
//	%r  relative age, e.g. "2 minutes ago"
//	%%  literal percent sign
//
// Unknown tokens are passed through unchanged.
func (n *Notification) Expand(template string) string {
	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' || i+1 >= len(template) {
			b.WriteByte(c)
			continue
		}

		i++
		switch template[i] {
		case 's':
			b.WriteString(n.Summary)
		case 'b':
			b.WriteString(n.Body)
		case 'a':
			b.WriteString(n.AppName)
		case 'i':
			b.WriteString(strconv.FormatUint(uint64(n.BusID), 10))
		case 'p':
			if n.Progress >= 0 {
				b.WriteString(strconv.Itoa(n.Progress))
				b.WriteByte('%')
			}
		case 'r':
			b.WriteString(humanize.Time(n.ReceivedAt))
		case '%':
			b.WriteByte('%')
		default:
			b.WriteByte('%')
			b.WriteByte(template[i])
		}
	}

	return b.String()
}

// Clone creates a deep copy of the notification.
func (n *Notification) Clone() *Notification {
	clone := *n
	if n.Actions != nil {
		clone.Actions = make([]Action, len(n.Actions))
		copy(clone.Actions, n.Actions)
	}
	return &clone
}
