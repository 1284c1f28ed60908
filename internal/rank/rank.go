// Package rank keeps the best layouts seen during a search, ordered
// by descending score.
package rank

import "sync"

// Entry is a name/score snapshot of a layout at insertion time.
type Entry struct {
	Name  string
	Score float64
}

type node struct {
	entry Entry
	next  *node
}

// List is a singly linked ranking in strictly non-increasing score
// order. Insertion is mutually exclusive; concurrent workers may
// insert freely.
type List struct {
	mu   sync.Mutex
	head *node
	n    int
}

// New returns an empty ranking list.
func New() *List {
	return &List{}
}

// Insert splices a name/score pair into sorted position. Among equal
// scores, earlier insertions stay ahead of later ones.
func (l *List) Insert(name string, score float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fresh := &node{entry: Entry{Name: name, Score: score}}
	if l.head == nil || score > l.head.entry.Score {
		fresh.next = l.head
		l.head = fresh
		l.n++
		return
	}
	cur := l.head
	for cur.next != nil && cur.next.entry.Score >= score {
		cur = cur.next
	}
	fresh.next = cur.next
	cur.next = fresh
	l.n++
}

// Len returns the number of entries.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.n
}

// Snapshot copies the entries out in rank order.
func (l *List) Snapshot() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, 0, l.n)
	for cur := l.head; cur != nil; cur = cur.next {
		out = append(out, cur.entry)
	}
	return out
}

// Top returns up to n leading entries.
func (l *List) Top(n int) []Entry {
	entries := l.Snapshot()
	if n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// Reset drops every entry. The list is reusable afterward.
func (l *List) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.head = nil
	l.n = 0
}
