package dbus

import (
	"github.com/godbus/dbus/v5"

	"github.com/filamentd/filament/internal/model"
)

// CloseReason is the reason code carried by the NotificationClosed
// signal, as defined by the freedesktop.org notification specification.
type CloseReason uint32

const (
	// CloseReasonExpired indicates the notification timed out.
	CloseReasonExpired CloseReason = 1
	// CloseReasonDismissed indicates the user dismissed the popup.
	CloseReasonDismissed CloseReason = 2
	// CloseReasonClosed indicates a CloseNotification call.
	CloseReasonClosed CloseReason = 3
	// CloseReasonUndefined is reserved by the desktop notification
	// protocol for unspecified causes.
	CloseReasonUndefined CloseReason = 4
)

// String returns the string representation of the close reason.
func (r CloseReason) String() string {
	switch r {
	case CloseReasonExpired:
		return "expired"
	case CloseReasonDismissed:
		return "dismissed"
	case CloseReasonClosed:
		return "closed"
	case CloseReasonUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// Request carries the raw parameters of one
// org.freedesktop.Notifications.Notify call.
type Request struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string // alternating key, label pairs
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // -1 = server default, 0 = never expire
}

// ParsedActions converts the D-Bus action array to structured form.
func (r *Request) ParsedActions() []model.Action {
	actions := make([]model.Action, 0, len(r.Actions)/2)
	for i := 0; i+1 < len(r.Actions); i += 2 {
		actions = append(actions, model.Action{
			Key:   r.Actions[i],
			Label: r.Actions[i+1],
		})
	}
	return actions
}

// Urgency extracts the urgency hint, defaulting to normal.
func (r *Request) Urgency() int {
	if v, ok := r.Hints["urgency"]; ok {
		if b, ok := v.Value().(byte); ok {
			return int(b)
		}
	}
	return model.UrgencyNormal
}

// ImagePath extracts the image-path hint, falling back to the
// deprecated image_path spelling older clients still send.
func (r *Request) ImagePath() string {
	for _, key := range []string{"image-path", "image_path"} {
		if v, ok := r.Hints[key]; ok {
			if s, ok := v.Value().(string); ok {
				return s
			}
		}
	}
	return ""
}

// Progress extracts the progress value hint, as sent by notify-send and
// dunstify via int:value:N. Returns -1 when absent.
func (r *Request) Progress() int {
	if v, ok := r.Hints["value"]; ok {
		switch val := v.Value().(type) {
		case int32:
			return int(val)
		case uint32:
			return int(val)
		case int:
			return val
		case byte:
			return int(val)
		}
	}
	return -1
}

// Transient reports whether the transient hint is set.
func (r *Request) Transient() bool {
	if v, ok := r.Hints["transient"]; ok {
		if b, ok := v.Value().(bool); ok {
			return b
		}
	}
	return false
}

// SuppressSound reports whether the suppress-sound hint is set.
func (r *Request) SuppressSound() bool {
	if v, ok := r.Hints["suppress-sound"]; ok {
		if b, ok := v.Value().(bool); ok {
			return b
		}
	}
	return false
}

// SoundFile extracts the sound-file hint.
func (r *Request) SoundFile() string {
	if v, ok := r.Hints["sound-file"]; ok {
		if s, ok := v.Value().(string); ok {
			return s
		}
	}
	return ""
}

// ToModel converts the request to a validated model notification. The
// app icon becomes the app image and the image hint, when present,
// becomes the hint image.
func (r *Request) ToModel(busID uint32) (*model.Notification, error) {
	n, err := model.New()
	if err != nil {
		return nil, err
	}

	n.BusID = busID
	n.AppName = r.AppName
	n.Summary = r.Summary
	n.Body = r.Body
	n.AppImage = r.AppIcon
	n.HintImage = r.ImagePath()
	n.Progress = r.Progress()
	n.Timeout = r.ExpireTimeout
	n.Actions = r.ParsedActions()
	n.SetUrgency(r.Urgency())

	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

// ServerCapabilities lists the capabilities advertised by filamentd.
var ServerCapabilities = []string{
	"actions",
	"body",
	"icon-static",
	"sound",
}

// ServerInfo contains the GetServerInformation reply fields.
type ServerInfo struct {
	Name        string
	Vendor      string
	Version     string
	SpecVersion string
}

// DefaultServerInfo returns the server information filamentd reports.
func DefaultServerInfo() ServerInfo {
	return ServerInfo{
		Name:        "filamentd",
		Vendor:      "filament",
		Version:     "0.0.1", // replaced by the build-time version
		SpecVersion: "1.2",
	}
}
