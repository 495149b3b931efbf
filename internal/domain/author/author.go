package author

import "fmt"

// Author identifies who wrote a post. Values are immutable; every builder
// step returns a new Author.
type Author struct {
	firstname string
	lastname  string
}

// New returns an Author with empty names
func New() Author {
	return Author{}
}

// AddFirstname returns a copy with the first name replaced
func (a Author) AddFirstname(name string) Author {
	return Author{firstname: name, lastname: a.lastname}
}

// AddLastname returns a copy with the last name replaced
func (a Author) AddLastname(name string) Author {
	return Author{firstname: a.firstname, lastname: name}
}

// Firstname returns the first name
func (a Author) Firstname() string {
	return a.firstname
}

// Lastname returns the last name
func (a Author) Lastname() string {
	return a.lastname
}

// String renders the author as "<firstname> <lastname>"
func (a Author) String() string {
	return fmt.Sprintf("%s %s", a.firstname, a.lastname)
}
