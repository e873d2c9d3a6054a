package dom

import "strings"

// Attribute is a single attribute. Namespace is empty for ordinary HTML
// attributes; foreign attributes carry their namespace URL and a prefixed
// Name such as "xlink:href".
type Attribute struct {
	Namespace string
	Name      string
	Value     string
}

// Attributes is an ordered attribute collection. Insertion order is
// preserved and observable; a key mapped to the empty string is distinct
// from an absent key.
type Attributes struct {
	list []Attribute
}

// NewAttributes returns an empty collection.
func NewAttributes() *Attributes { return &Attributes{} }

// Get looks up an un-namespaced attribute, case-insensitively for HTML.
func (a *Attributes) Get(name string) (string, bool) {
	for i := range a.list {
		if a.list[i].Namespace == "" && strings.EqualFold(a.list[i].Name, name) {
			return a.list[i].Value, true
		}
	}
	return "", false
}

// GetNS looks up a namespaced attribute by exact namespace and name.
func (a *Attributes) GetNS(namespace, name string) (string, bool) {
	for i := range a.list {
		if a.list[i].Namespace == namespace && a.list[i].Name == name {
			return a.list[i].Value, true
		}
	}
	return "", false
}

// Set writes an un-namespaced attribute, overwriting an existing value.
// HTML attribute names are stored lowercase.
func (a *Attributes) Set(name, value string) {
	a.SetNS("", strings.ToLower(name), value)
}

// SetNS writes a namespaced attribute, overwriting an existing value.
func (a *Attributes) SetNS(namespace, name, value string) {
	for i := range a.list {
		if a.list[i].Namespace == namespace && strings.EqualFold(a.list[i].Name, name) {
			a.list[i].Value = value
			return
		}
	}
	a.list = append(a.list, Attribute{Namespace: namespace, Name: name, Value: value})
}

// Has reports whether an un-namespaced attribute exists.
func (a *Attributes) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// HasNS reports whether a namespaced attribute exists.
func (a *Attributes) HasNS(namespace, name string) bool {
	_, ok := a.GetNS(namespace, name)
	return ok
}

// Remove deletes an un-namespaced attribute.
func (a *Attributes) Remove(name string) { a.RemoveNS("", name) }

// RemoveNS deletes a namespaced attribute.
func (a *Attributes) RemoveNS(namespace, name string) {
	for i := range a.list {
		if a.list[i].Namespace == namespace && strings.EqualFold(a.list[i].Name, name) {
			a.list = append(a.list[:i], a.list[i+1:]...)
			return
		}
	}
}

// All returns a copy of the attributes in insertion order.
func (a *Attributes) All() []Attribute {
	out := make([]Attribute, len(a.list))
	copy(out, a.list)
	return out
}

// Len returns the attribute count.
func (a *Attributes) Len() int { return len(a.list) }

// Clone copies the collection.
func (a *Attributes) Clone() *Attributes {
	c := &Attributes{list: make([]Attribute, len(a.list))}
	copy(c.list, a.list)
	return c
}
