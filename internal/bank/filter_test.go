package bank

import (
	"testing"

	"github.com/opostest/backend/internal/models"
)

func testPool() []models.Question {
	return []models.Question{
		{ID: 1, Theme: "1", Title: "Constitution"},
		{ID: 2, Theme: "1", Title: "Constitution"},
		{ID: 3, Theme: "2", Title: "Procedure"},
		{ID: 4, Theme: "3", Title: ""},
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		titleKey string
		themeKey string
		wantIDs  []int64
	}{
		{"no keys returns full bank", "", "", []int64{1, 2, 3, 4}},
		{"theme key", "", "2", []int64{3}},
		{"title key", "Constitution", "", []int64{1, 2}},
		{"title takes precedence over theme", "Procedure", "1", []int64{3}},
		{"numeric theme matches as text", "", "3", []int64{4}},
		{"unknown key yields empty pool", "", "99", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(testPool(), tt.titleKey, tt.themeKey)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d questions, want %d", len(got), len(tt.wantIDs))
			}
			for i, q := range got {
				if q.ID != tt.wantIDs[i] {
					t.Errorf("question %d: id = %d, want %d", i, q.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestThemesDistinctFirstSeen(t *testing.T) {
	b := New([]models.Question{
		{ID: 1, Theme: "1", Title: "Constitution"},
		{ID: 2, Theme: "1", Title: "Constitution"},
		{ID: 3, Theme: "2", Title: "Procedure"},
		{ID: 4},
	})

	themes := b.Themes()
	if len(themes) != 2 {
		t.Fatalf("expected 2 themes, got %d", len(themes))
	}
	if themes[0].ID != "1" || themes[0].Title != "Constitution" {
		t.Errorf("first theme = %+v", themes[0])
	}
	if themes[1].ID != "2" || themes[1].Title != "Procedure" {
		t.Errorf("second theme = %+v", themes[1])
	}
}
