package siteconfig

// Identifiable is any list element carrying a numeric id.
type Identifiable interface {
	Identifier() int
}

// NextID returns max(existing ids, 0) + 1.
// Two writers computing it from the same snapshot get the same id.
func NextID[T Identifiable](items []T) int {
	highest := 0
	for _, it := range items {
		if id := it.Identifier(); id > highest {
			highest = id
		}
	}
	return highest + 1
}

// IndexOf returns the position of the element with the given id, or -1.
func IndexOf[T Identifiable](items []T, id int) int {
	for i, it := range items {
		if it.Identifier() == id {
			return i
		}
	}
	return -1
}
