package finder

import (
	"sort"
)

// Entry is a single insertion: Text goes immediately before Offset, a byte
// offset into the UTF-8 source (not a rune or UTF-16 index).
type Entry struct {
	Offset int    `yaml:"offset" json:"offset"`
	Text   string `yaml:"text" json:"text"`
}

// Positions maps source byte offsets to insertion text. An offset holds at most
// one text: the first Put wins and later ones are dropped.
type Positions struct {
	texts map[int]string
}

// NewPositions returns an empty map.
func NewPositions() *Positions {
	return &Positions{texts: make(map[int]string)}
}

// Put records text at offset unless the offset is already taken; it reports
// whether text was recorded.
func (p *Positions) Put(offset int, text string) bool {
	if _, ok := p.texts[offset]; ok {
		return false
	}
	p.texts[offset] = text
	return true
}

// Get returns the text recorded at offset.
func (p *Positions) Get(offset int) (string, bool) {
	text, ok := p.texts[offset]
	return text, ok
}

// Len returns the number of recorded offsets.
func (p *Positions) Len() int {
	return len(p.texts)
}

// Offsets returns the recorded offsets in descending order, the order in
// which a splicer must apply them.
func (p *Positions) Offsets() []int {
	offsets := make([]int, 0, len(p.texts))
	for offset := range p.texts {
		offsets = append(offsets, offset)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(offsets)))
	return offsets
}

// Entries returns offset/text pairs in descending offset order.
func (p *Positions) Entries() []Entry {
	offsets := p.Offsets()
	entries := make([]Entry, len(offsets))
	for i, offset := range offsets {
		entries[i] = Entry{Offset: offset, Text: p.texts[offset]}
	}
	return entries
}

// MarshalYAML renders the map as an ordered entry list.
func (p *Positions) MarshalYAML() (interface{}, error) {
	return p.Entries(), nil
}
