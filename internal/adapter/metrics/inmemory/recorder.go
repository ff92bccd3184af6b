package inmemory

import "sync"

type Snapshot struct {
	ChallengeTotal uint64            `json:"challenge_total"`
	SiegeTotal     uint64            `json:"siege_total"`
	RejectedTotal  uint64            `json:"rejected_total"`
	ByChallenge    map[string]uint64 `json:"by_challenge_outcome"`
	BySiege        map[string]uint64 `json:"by_siege_outcome"`
	ByRejection    map[string]uint64 `json:"by_rejection_reason"`
}

type Recorder struct {
	mu          sync.Mutex
	byChallenge map[string]uint64
	bySiege     map[string]uint64
	byRejection map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byChallenge: map[string]uint64{},
		bySiege:     map[string]uint64{},
		byRejection: map[string]uint64{},
	}
}

func (r *Recorder) RecordChallenge(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byChallenge[outcome]++
}

func (r *Recorder) RecordSiege(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bySiege[outcome]++
}

func (r *Recorder) RecordRejected(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byRejection[reason]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ByChallenge: make(map[string]uint64, len(r.byChallenge)),
		BySiege:     make(map[string]uint64, len(r.bySiege)),
		ByRejection: make(map[string]uint64, len(r.byRejection)),
	}
	for k, v := range r.byChallenge {
		out.ByChallenge[k] = v
		out.ChallengeTotal += v
	}
	for k, v := range r.bySiege {
		out.BySiege[k] = v
		out.SiegeTotal += v
	}
	for k, v := range r.byRejection {
		out.ByRejection[k] = v
		out.RejectedTotal += v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
