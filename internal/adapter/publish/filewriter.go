package publish

import (
	"encoding/json"
	"os"
	"path/filepath"

	"crownhold/internal/domain/royal"
)

// FileWriter lands each snapshot as one JSON document, replacing the
// previous one atomically via rename. Readers never observe a partial
// write.
type FileWriter struct {
	Path string
}

// exportDocument is the file layout dashboards read: the full monarch row
// plus the derived economy totals so readers need no domain math.
type exportDocument struct {
	Monarch       royal.Monarch `json:"monarch"`
	DailyIncome   int64         `json:"daily_income"`
	DailyExpenses int64         `json:"daily_expenses"`
	GuardCount    int           `json:"guard_count"`
}

func (w FileWriter) WriteSnapshot(snapshot royal.Monarch) error {
	doc := exportDocument{
		Monarch:       snapshot,
		DailyIncome:   snapshot.CalculateDailyIncome(),
		DailyExpenses: snapshot.CalculateDailyExpenses(),
		GuardCount:    snapshot.TotalGuardCount(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(w.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".monarch-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), w.Path)
}
