package service

import (
	"context"
	"strings"
	"time"

	"github.com/ebracha/plank/internal/contract"
	"github.com/ebracha/plank/internal/domain"
	"github.com/ebracha/plank/internal/repository"
)

type metricsService struct {
	boards  repository.BoardRepo
	columns repository.ColumnRepo
	cards   repository.CardRepo
}

func NewMetricsService(
	boards repository.BoardRepo,
	columns repository.ColumnRepo,
	cards repository.CardRepo,
) MetricsService {
	return &metricsService{boards: boards, columns: columns, cards: cards}
}

// Get folds the board's non-archived cards into the metrics report. It reads
// committed state without locks and never writes.
func (s *metricsService) Get(ctx context.Context, boardID string, now time.Time) (*contract.Metrics, error) {
	if _, err := s.boards.GetByID(ctx, boardID); err != nil {
		return nil, err
	}
	columns, err := s.columns.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	cards, err := s.cards.ListByBoard(ctx, boardID, false)
	if err != nil {
		return nil, err
	}
	return aggregate(boardID, columns, cards, now), nil
}

// aggregate is the pure computation behind Get. Date buckets compare bare
// dates in now's location; a card due today is not overdue.
func aggregate(boardID string, columns []*domain.Column, cards []*domain.Card, now time.Time) *contract.Metrics {
	m := &contract.Metrics{
		BoardID:      boardID,
		TotalCards:   len(cards),
		TotalColumns: len(columns),
	}
	if m.TotalColumns > 0 {
		m.AverageCardsPerColumn = float64(m.TotalCards) / float64(m.TotalColumns)
	}

	today := truncateToDay(now)
	horizon := today.AddDate(0, 0, 7)

	for _, card := range cards {
		switch card.Priority {
		case domain.PriorityHigh:
			m.High.Count++
		case domain.PriorityLow:
			m.Low.Count++
		default:
			m.Medium.Count++
		}

		if card.DueDate == nil {
			continue
		}
		due := truncateToDay(*card.DueDate)
		switch {
		case due.Before(today):
			m.Overdue++
			if card.Priority == domain.PriorityHigh {
				m.OverdueHighPriority++
			}
		case due.Equal(today):
			m.DueToday++
		}
		if !due.Before(today) && due.Before(horizon) {
			m.DueNext7Days++
		}
	}

	if m.TotalCards > 0 {
		m.High.Percent = percent(m.High.Count, m.TotalCards)
		m.Medium.Percent = percent(m.Medium.Count, m.TotalCards)
		m.Low.Percent = percent(m.Low.Count, m.TotalCards)
	}

	countByColumn := make(map[string]int, len(columns))
	for _, card := range cards {
		countByColumn[card.ColumnID]++
	}

	doneID := completionColumnID(columns)
	for _, col := range columns {
		count := countByColumn[col.ID]
		breakdown := contract.ColumnBreakdown{
			ColumnID: col.ID,
			Title:    col.Title,
			Count:    count,
		}
		if m.TotalCards > 0 {
			breakdown.Percent = percent(count, m.TotalCards)
		}
		m.Columns = append(m.Columns, breakdown)
		if col.ID == doneID {
			m.CompletedCards = count
		}
	}
	m.ActiveCards = m.TotalCards - m.CompletedCards

	return m
}

// completionColumnID picks the column whose title equals "Done" ignoring
// case, falling back to the rightmost column.
func completionColumnID(columns []*domain.Column) string {
	var rightmost *domain.Column
	for _, col := range columns {
		if strings.EqualFold(strings.TrimSpace(col.Title), "Done") {
			return col.ID
		}
		if rightmost == nil || col.Position > rightmost.Position {
			rightmost = col
		}
	}
	if rightmost == nil {
		return ""
	}
	return rightmost.ID
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func percent(count, total int) float64 {
	return float64(count) * 100 / float64(total)
}
