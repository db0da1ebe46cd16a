package notifyfake

import (
	"sync"

	"github.com/jrsteele09/go-member-client/notify"
)

var _ notify.Notifier = (*Recorder)(nil)

// Recorder keeps every notification it receives.
type Recorder struct {
	notes []notify.Notification
	lock  sync.Mutex
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(n notify.Notification) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.notes = append(r.notes, n)
}

func (r *Recorder) All() []notify.Notification {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]notify.Notification(nil), r.notes...)
}

// Messages returns the message of every notification in order
func (r *Recorder) Messages() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	out := make([]string, 0, len(r.notes))
	for _, n := range r.notes {
		out = append(out, n.Message)
	}
	return out
}

func (r *Recorder) Reset() {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.notes = nil
}
