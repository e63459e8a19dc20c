package bot

import (
	"strconv"
	"sync"

	tele "gopkg.in/telebot.v4"
)

// MessageRef points at one rendered message.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// PanelTracker remembers the last admin-panel message per admin so that
// handlers fired outside a callback (photo uploads, broadcast results) can
// still retarget the panel. Process-local, lost on restart.
type PanelTracker struct {
	mu   sync.RWMutex
	refs map[int64]MessageRef
}

// NewPanelTracker builds an empty tracker.
func NewPanelTracker() *PanelTracker {
	return &PanelTracker{refs: make(map[int64]MessageRef)}
}

// Remember records the panel message most recently rendered for an admin.
func (t *PanelTracker) Remember(adminID int64, msg *tele.Message) {
	if msg == nil || msg.Chat == nil {
		return
	}
	t.mu.Lock()
	t.refs[adminID] = MessageRef{ChatID: msg.Chat.ID, MessageID: msg.ID}
	t.mu.Unlock()
}

// Ref returns the last recorded panel message, if any.
func (t *PanelTracker) Ref(adminID int64) (MessageRef, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ref, ok := t.refs[adminID]
	return ref, ok
}

// Forget drops the recorded reference, e.g. on logout.
func (t *PanelTracker) Forget(adminID int64) {
	t.mu.Lock()
	delete(t.refs, adminID)
	t.mu.Unlock()
}

// MessageSig implements tele.Editable for a stored reference.
func (r MessageRef) MessageSig() (string, int64) {
	return strconv.Itoa(r.MessageID), r.ChatID
}
