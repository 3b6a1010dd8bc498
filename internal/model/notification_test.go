package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	n, err := New()
	require.NoError(t, err)

	assert.NotEmpty(t, n.ID)
	assert.Equal(t, UrgencyNormal, n.Urgency)
	assert.Equal(t, -1, n.Progress)
	assert.Equal(t, int32(-1), n.Timeout)
	require.NoError(t, n.Validate())
}

func TestValidate(t *testing.T) {
	n, err := New()
	require.NoError(t, err)

	n.Urgency = 7
	assert.ErrorIs(t, n.Validate(), ErrInvalidUrgency)

	n.Urgency = UrgencyLow
	n.ID = ""
	assert.ErrorIs(t, n.Validate(), ErrEmptyID)
}

func TestSetUrgency(t *testing.T) {
	n := &Notification{}

	n.SetUrgency(UrgencyCritical)
	assert.Equal(t, UrgencyCritical, n.Urgency)
	assert.Equal(t, "critical", n.UrgencyName())

	n.SetUrgency(99)
	assert.Equal(t, UrgencyNormal, n.Urgency)
}

func TestImagePresence(t *testing.T) {
	n := &Notification{}
	assert.False(t, n.HasAppImage())
	assert.False(t, n.HasHintImage())

	n.AppImage = "/usr/share/icons/app.png"
	n.HintImage = "/tmp/cover.png"
	assert.True(t, n.HasAppImage())
	assert.True(t, n.HasHintImage())
}

func TestExpand(t *testing.T) {
	n := &Notification{
		BusID:      42,
		AppName:    "mailer",
		Summary:    "New mail",
		Body:       "3 unread messages",
		Progress:   75,
		ReceivedAt: time.Now(),
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"summary", "%s", "New mail"},
		{"body", "%b", "3 unread messages"},
		{"app name", "%a", "mailer"},
		{"bus id", "#%i", "#42"},
		{"progress", "%p", "75%"},
		{"literal percent", "100%%", "100%"},
		{"mixed", "%a: %s", "mailer: New mail"},
		{"unknown token", "%z", "%z"},
		{"trailing percent", "done%", "done%"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Expand(tt.template))
		})
	}
}

func TestExpand_NoProgress(t *testing.T) {
	n := &Notification{Progress: -1}
	assert.Equal(t, "", n.Expand("%p"))
}

func TestExpand_RelativeAge(t *testing.T) {
	n := &Notification{ReceivedAt: time.Now().Add(-2 * time.Minute)}
	assert.Contains(t, n.Expand("%r"), "minutes ago")
}

func TestClone(t *testing.T) {
	n := &Notification{
		ID:      "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		Summary: "original",
		Actions: []Action{{Key: "default", Label: "Open"}},
	}

	clone := n.Clone()
	clone.Summary = "changed"
	clone.Actions[0].Key = "other"

	assert.Equal(t, "original", n.Summary)
	assert.Equal(t, "default", n.Actions[0].Key)
}
