package manifest

import "strings"

// Attribute is a single manifest header.
type Attribute struct {
	Name  string
	Value string
}

// Attributes is an ordered set of headers. Names compare case-insensitively,
// as the jar format specifies; setting an existing name replaces its value
// and keeps its original spelling and position.
type Attributes struct {
	list []Attribute
}

// NewAttributes returns an empty attribute set
func NewAttributes() *Attributes {
	return &Attributes{}
}

func (a *Attributes) indexOf(name string) int {
	for i, attr := range a.list {
		if strings.EqualFold(attr.Name, name) {
			return i
		}
	}
	return -1
}

// Get returns the value stored under name
func (a *Attributes) Get(name string) (string, bool) {
	if i := a.indexOf(name); i >= 0 {
		return a.list[i].Value, true
	}
	return "", false
}

// Value returns the value stored under name, or "" when absent
func (a *Attributes) Value(name string) string {
	v, _ := a.Get(name)
	return v
}

// Set stores value under name
func (a *Attributes) Set(name, value string) {
	if i := a.indexOf(name); i >= 0 {
		a.list[i].Value = value
		return
	}
	a.list = append(a.list, Attribute{Name: name, Value: value})
}

// Delete removes name, reporting whether it was present
func (a *Attributes) Delete(name string) bool {
	i := a.indexOf(name)
	if i < 0 {
		return false
	}
	a.list = append(a.list[:i], a.list[i+1:]...)
	return true
}

// Len returns the number of attributes
func (a *Attributes) Len() int {
	return len(a.list)
}

// All returns the attributes in order. The slice is a copy.
func (a *Attributes) All() []Attribute {
	out := make([]Attribute, len(a.list))
	copy(out, a.list)
	return out
}

// Filter returns a copy holding only the attributes keep accepts
func (a *Attributes) Filter(keep func(name string) bool) *Attributes {
	out := NewAttributes()
	for _, attr := range a.list {
		if keep(attr.Name) {
			out.list = append(out.list, attr)
		}
	}
	return out
}

// Clone returns a copy of a
func (a *Attributes) Clone() *Attributes {
	return &Attributes{list: a.All()}
}
