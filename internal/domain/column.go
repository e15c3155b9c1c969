package domain

type Column struct {
	ID       string
	BoardID  string
	Title    string
	Position int
}
