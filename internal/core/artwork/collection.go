package artwork

// RemoveTitle returns records without any artwork titled title and the number
// of artworks removed. records is not modified.
func RemoveTitle(records []Artwork, title string) ([]Artwork, int) {
	out := make([]Artwork, 0, len(records))
	for _, a := range records {
		if a.Title != title {
			out = append(out, a)
		}
	}
	return out, len(records) - len(out)
}

// ReplaceTitle replaces the first artwork titled title with a, in place.
// Returns false if no artwork matched.
func ReplaceTitle(records []Artwork, title string, a Artwork) bool {
	for i := range records {
		if records[i].Title == title {
			records[i] = a
			return true
		}
	}
	return false
}

// InsertAt returns records with a placed at index. Out of range indexes
// append. records is not modified.
func InsertAt(records []Artwork, index int, a Artwork) []Artwork {
	if index < 0 || index > len(records) {
		index = len(records)
	}
	out := make([]Artwork, 0, len(records)+1)
	out = append(out, records[:index]...)
	out = append(out, a)
	return append(out, records[index:]...)
}
