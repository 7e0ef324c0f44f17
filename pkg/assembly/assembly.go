// Package assembly holds the contract shared by code generation backends.
package assembly

// Assembly generates target code for a parsed program and writes it out.
type Assembly interface {
	Generate() error
	GetCode() string
	Build() error
}
