package entity

// Genre is a catalog category. Names are unique case-insensitively.
type Genre struct {
	ID   int64
	Name string
}
