// Package history accumulates recent chat lines for greeting new clients.
package history

import (
	"fmt"
	"sync"
)

// Stack - keeps a limited number of lines in arrival order.
// When the limit is reached, every push drops the oldest line.
type Stack struct {
	max  int
	mu   sync.RWMutex
	data []string
}

// NewStack - builds history stack limited with max lines.
func NewStack(max int) (*Stack, error) {
	if max <= 0 {
		return nil, fmt.Errorf("history.NewStack: max (%d) must be greater than 0", max)
	}
	return &Stack{max: max, data: []string{}}, nil
}

// Len - returns number of currently kept lines.
func (s *Stack) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Push - adds a line to history.
func (s *Stack) Push(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.data) == s.max {
		s.data = s.data[1:]
	}
	s.data = append(s.data, line)
}

// Tail - makes copy of last n lines from the stack.
// The first line of the result is the oldest one.
func (s *Stack) Tail(n int) []string {
	if n < 0 {
		n = -n
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > len(s.data) {
		n = len(s.data)
	}
	tail := make([]string, n)
	copy(tail, s.data[len(s.data)-n:])
	return tail
}
