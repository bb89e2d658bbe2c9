package redux

import "slices"

// Listener is a zero-argument callback invoked after every completed state
// transition. Listeners read the new state through Store.State and may
// dispatch further actions; both are legal during the notification phase.
type Listener func()

// UnsubscribeFunc removes the listener registered by the Subscribe call that
// returned it. It is idempotent: calls after the first are no-ops. The first
// call fails with ErrUnsubscribeDuringDispatch if a reducer is executing.
type UnsubscribeFunc func() error

// subscription is one registry entry. Listeners are funcs and funcs are not
// comparable, so removal works by entry identity instead of callback value.
type subscription struct {
	listener Listener
}

// listenerList is an ordered set of subscriptions. Pointer equality between
// the committed and working lists decides whether a mutation must clone.
type listenerList struct {
	entries []*subscription
}

// subscriberSet maintains the committed/working pair of listener lists.
//
// Both fields alias the same list until a mutation happens after a commit.
// The first mutation clones the working list before touching it, so a
// committed snapshot never changes underneath an in-flight notification
// phase: listeners added re-entrantly run on the next dispatch, listeners
// removed re-entrantly still run if the snapshot holds them.
type subscriberSet struct {
	committed *listenerList
	working   *listenerList
}

func newSubscriberSet() *subscriberSet {
	shared := &listenerList{}
	return &subscriberSet{committed: shared, working: shared}
}

// mutableWorking returns a working list that is safe to mutate, cloning it
// first if it still aliases the committed snapshot.
func (s *subscriberSet) mutableWorking() *listenerList {
	if s.working == s.committed {
		s.working = &listenerList{entries: slices.Clone(s.working.entries)}
	}
	return s.working
}

// add appends a listener to the working list and returns its entry.
func (s *subscriberSet) add(listener Listener) *subscription {
	sub := &subscription{listener: listener}
	w := s.mutableWorking()
	w.entries = append(w.entries, sub)
	return sub
}

// remove deletes the entry from the working list, if present.
func (s *subscriberSet) remove(sub *subscription) {
	w := s.mutableWorking()
	for i, e := range w.entries {
		if e == sub {
			w.entries = append(w.entries[:i], w.entries[i+1:]...)
			return
		}
	}
}

// commit publishes the working list as the committed snapshot and returns it.
// Dispatch calls this right before its notification loop.
func (s *subscriberSet) commit() *listenerList {
	s.committed = s.working
	return s.committed
}

// len reports the size of the working list.
func (s *subscriberSet) len() int {
	return len(s.working.entries)
}
