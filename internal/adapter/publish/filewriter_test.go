package publish

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"crownhold/internal/domain/royal"
)

func TestFileWriterReplacesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "monarch.json")
	w := FileWriter{Path: path}

	if err := w.WriteSnapshot(royal.Monarch{Name: "Alys", Treasury: 5000}); err != nil {
		t.Fatalf("first write: %v", err)
	}
	second := royal.Monarch{
		Name:            "Borin",
		Treasury:        100,
		DailyTaxRevenue: 750,
		Guards:          []royal.RoyalGuard{{Name: "Hargrim", DailySalary: 300, IsActive: true}},
	}
	if err := w.WriteSnapshot(second); err != nil {
		t.Fatalf("second write: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var doc exportDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Monarch.Name != "Borin" {
		t.Fatalf("expected latest snapshot, got %s", doc.Monarch.Name)
	}
	if doc.DailyIncome != 750 || doc.DailyExpenses != 300 || doc.GuardCount != 1 {
		t.Fatalf("derived totals not exported: %+v", doc)
	}
}
