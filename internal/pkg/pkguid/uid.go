package pkguid

// StringID generates unique string identifiers.
type StringID interface {
	// Generate generates a unique identifier as a string.
	Generate() string
}

var (
	_ StringID = (*UUID)(nil)
	_ StringID = (*Token)(nil)
)
