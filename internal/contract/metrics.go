package contract

// PriorityBucket holds the count and share of one priority level.
type PriorityBucket struct {
	Count   int
	Percent float64
}

// ColumnBreakdown is one column's live card count and its share of the
// board total.
type ColumnBreakdown struct {
	ColumnID string
	Title    string
	Count    int
	Percent  float64
}

// Metrics is the read-only aggregation over one board's non-archived cards.
type Metrics struct {
	BoardID              string
	TotalCards           int
	TotalColumns         int
	AverageCardsPerColumn float64

	High   PriorityBucket
	Medium PriorityBucket
	Low    PriorityBucket

	Overdue             int
	OverdueHighPriority int
	DueToday            int
	DueNext7Days        int

	CompletedCards int
	ActiveCards    int

	Columns []ColumnBreakdown
}
