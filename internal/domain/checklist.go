package domain

type Checklist struct {
	ID       string
	CardID   string
	Title    string
	Position int
}

type ChecklistItem struct {
	ID          string
	ChecklistID string
	Text        string
	IsChecked   bool
	Position    int
}
