package domain

// Document is a raw source file awaiting ingestion.
type Document struct {
	// Name is the file name, object key or URI the document was read from.
	Name    string
	Content []byte
}
