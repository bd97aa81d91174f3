package buffer

import "testing"

func TestPoolGetIsSilent(t *testing.T) {
	p := NewPool()

	s := p.Get(4)
	s.Left[0], s.Right[3] = 1, 1
	p.Put(s)

	s = p.Get(4)
	for i := range s.Left {
		if s.Left[i] != 0 || s.Right[i] != 0 {
			t.Fatalf("frame %d not zeroed after reuse", i)
		}
	}
}

func TestPoolPutNil(t *testing.T) {
	NewPool().Put(nil)
}
