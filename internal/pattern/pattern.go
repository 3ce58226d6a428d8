// Package pattern builds glob-style extension patterns for file-chooser
// filters. One scratch buffer is shared across every extension of a
// dialog's filter list, so the number of allocations is bounded by the
// number of capacity increases rather than the number of extensions.
package pattern

// Filter names a group of file extensions offered to a file chooser,
// e.g. {Name: "Images", Extensions: []string{"png", "jpg"}}.
type Filter struct {
	Name       string
	Extensions []string
}

// Adder receives filter registrations in dialog order: a filter name
// first, then one glob per extension belonging to it.
type Adder interface {
	AddFilter(name string)
	AddPattern(glob string)
}

// Buffer is the scratch buffer behind Apply. Its backing array grows to
// exactly the required size, and only when a longer pattern than any seen
// before is needed. It never shrinks.
type Buffer struct {
	buf   []byte
	grows int
}

// Pattern formats "*." followed by ext into the buffer and returns the
// formatted bytes. The slice is valid only until the next call.
func (b *Buffer) Pattern(ext string) []byte {
	need := 2 + len(ext)
	if need > cap(b.buf) {
		b.buf = make([]byte, need)
		b.grows++
	}
	b.buf = b.buf[:need]
	b.buf[0] = '*'
	b.buf[1] = '.'
	copy(b.buf[2:], ext)
	return b.buf
}

// Grows reports how many times the backing array was reallocated.
func (b *Buffer) Grows() int { return b.grows }

// Cap reports the current capacity of the backing array.
func (b *Buffer) Cap() int { return cap(b.buf) }

// Apply walks filters in order, announcing each filter name and then one
// glob pattern per extension to dst. Extensions are taken verbatim, so
// "png" becomes "*.png" and a leading dot is not stripped. An empty
// filter list touches the scratch buffer not at all.
func Apply(filters []Filter, dst Adder) {
	var scratch Buffer
	for _, f := range filters {
		dst.AddFilter(f.Name)
		for _, ext := range f.Extensions {
			dst.AddPattern(string(scratch.Pattern(ext)))
		}
	}
}

// Group is one named set of glob patterns.
type Group struct {
	Name     string
	Patterns []string
}

// List is an Adder that collects registrations into plain groups, for
// backends that need the whole set before constructing their native
// filter form.
type List struct {
	Groups []Group
}

// AddFilter starts a new group.
func (l *List) AddFilter(name string) {
	l.Groups = append(l.Groups, Group{Name: name})
}

// AddPattern appends a glob to the most recent group, starting an
// unnamed one if no filter was announced yet.
func (l *List) AddPattern(glob string) {
	if len(l.Groups) == 0 {
		l.Groups = append(l.Groups, Group{})
	}
	g := &l.Groups[len(l.Groups)-1]
	g.Patterns = append(g.Patterns, glob)
}

// Patterns reports the total number of globs across all groups.
func (l *List) Patterns() int {
	n := 0
	for _, g := range l.Groups {
		n += len(g.Patterns)
	}
	return n
}
