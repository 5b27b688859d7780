package entities

// Identity is a verified principal produced by the identity verifier.
type Identity struct {
	UID    string
	Email  string
	Name   string
	Claims map[string]any
}
