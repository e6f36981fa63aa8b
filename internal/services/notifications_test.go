package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidely/internal/store"
)

type fakeSender struct {
	messages []string
}

func (f *fakeSender) SendMessage(text string) error {
	f.messages = append(f.messages, text)
	return nil
}

func testManager(t *testing.T) (*ServiceManager, *fakeSender) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	manager := NewServiceManager(st)
	sender := &fakeSender{}
	manager.SetNotificationSender(sender)
	return manager, sender
}

func TestSendWelcome(t *testing.T) {
	manager, sender := testManager(t)

	manager.Notification.SendWelcome()

	require.Len(t, sender.messages, 1)
	assert.Contains(t, sender.messages[0], "Guidely is online")
	assert.Contains(t, sender.messages[0], "/today")
}

func TestSendMorningBriefing(t *testing.T) {
	manager, sender := testManager(t)

	manager.Notification.SendMorningBriefing()

	require.Len(t, sender.messages, 1)
	msg := sender.messages[0]
	assert.Contains(t, msg, "Daily briefing")
	assert.Contains(t, msg, "Today:")
	assert.Contains(t, msg, "Agenda:")
	assert.Contains(t, msg, "Streak:")
	assert.Contains(t, msg, "Vibe:")
}

func TestSendEveningSummary(t *testing.T) {
	manager, sender := testManager(t)

	manager.Notification.SendEveningSummary()

	require.Len(t, sender.messages, 1)
	assert.Contains(t, sender.messages[0], "Day summary")
}

func TestSendWeeklyDigest(t *testing.T) {
	manager, sender := testManager(t)

	manager.Notification.SendWeeklyDigest()

	require.Len(t, sender.messages, 1)
	assert.Contains(t, sender.messages[0], "Weekly digest")
	assert.Contains(t, sender.messages[0], "productivity score")
}
