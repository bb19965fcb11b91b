// Package broadcast fans messages out to many in-process subscribers.
//
// The live form service uses one MemoryBroadcaster per form session: every
// document change is broadcast, and each open event stream of that session
// holds a Subscriber. Broadcast never blocks. When a subscriber's buffer is
// full the message is dropped and counted; TakeDropped lets the consumer
// notice the gap and resynchronise instead of silently going stale.
//
//	b := broadcast.NewMemoryBroadcaster[form.Change](32)
//	sub := b.Subscribe(r.Context())
//	defer sub.Close()
//	for msg := range sub.Receive() {
//	    if sub.TakeDropped() > 0 {
//	        // re-render everything
//	    }
//	    render(msg.Data)
//	}
package broadcast
