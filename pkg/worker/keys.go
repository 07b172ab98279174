package worker

import (
	"github.com/google/uuid"
)

// Add submits fn under the next free integer key of p and returns that key.
// Keys count up from 0 per pool; values already taken by Submit are skipped.
func Add[V any](p *Pool[int, V], fn Func[V], args ...interface{}) (int, error) {
	return p.submitNext(func() int {
		key := p.seq
		p.seq++
		return key
	}, fn, NewArgs(args, nil))
}

// AddUUID submits fn under a random UUID key and returns that key
func AddUUID[V any](p *Pool[uuid.UUID, V], fn Func[V], args ...interface{}) (uuid.UUID, error) {
	return p.submitNext(uuid.New, fn, NewArgs(args, nil))
}
