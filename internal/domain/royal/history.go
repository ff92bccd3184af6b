package royal

import "time"

// MonarchRecord is one past reign in the kingdom's chronicle.
type MonarchRecord struct {
	Name           string    `json:"name"`
	Title          string    `json:"title"`
	DaysReigned    int       `json:"days_reigned"`
	CoronationDate time.Time `json:"coronation_date"`
	EndReason      string    `json:"end_reason"`
}

// History is the append-only ledger of past reigns, capped with FIFO
// eviction so the chronicle never grows without bound.
type History struct {
	Records []MonarchRecord `json:"records"`
}

func (h *History) Append(rec MonarchRecord) {
	h.Records = append(h.Records, rec)
	if len(h.Records) > MonarchHistoryCap {
		h.Records = h.Records[len(h.Records)-MonarchHistoryCap:]
	}
}

func (h *History) Len() int {
	return len(h.Records)
}

// RecordFor builds the chronicle entry for a reign that just ended.
func RecordFor(m *Monarch, endReason string, now time.Time) MonarchRecord {
	days := m.TotalReign
	if days == 0 && !m.CoronationDate.IsZero() {
		days = int(now.Sub(m.CoronationDate).Hours() / 24)
	}
	return MonarchRecord{
		Name:           m.Name,
		Title:          m.Titled(),
		DaysReigned:    days,
		CoronationDate: m.CoronationDate,
		EndReason:      endReason,
	}
}
