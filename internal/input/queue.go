package input

import "github.com/go-gl/mathgl/mgl32"

// Queue collects events and cursor motion between ticks. Platform callbacks push into it
// on the render thread; the loop drains it once per tick.
type Queue struct {
	events []Event
	look   mgl32.Vec2
}

// Push appends a decoded event.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// AddLook accumulates cursor movement in pixels.
func (q *Queue) AddLook(dx, dy float32) {
	q.look = q.look.Add(mgl32.Vec2{dx, dy})
}

// Drain returns everything queued so far and empties the queue.
func (q *Queue) Drain() Batch {
	b := Batch{Events: q.events, Look: q.look}
	q.events = nil
	q.look = mgl32.Vec2{}
	return b
}
