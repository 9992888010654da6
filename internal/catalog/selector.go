package catalog

// Selector identifies either one canonical item name or a named category
// set. It replaces "string or collection" parameters in the counting
// helpers with an explicit tagged value resolved before counting.
type Selector struct {
	item string
	set  Set
}

// Item selects a single canonical item name.
func Item(name string) Selector { return Selector{item: name} }

// Category selects every item in the given set.
func Category(set Set) Selector { return Selector{set: set} }

// Matches reports whether the given item name is selected.
func (s Selector) Matches(name string) bool {
	if s.set != nil {
		return s.set.contains(name)
	}
	return name == s.item
}
