package court

import (
	"context"
	"errors"
	"strings"
	"time"

	"crownhold/internal/app/ports"
	"crownhold/internal/domain/royal"
)

var ErrInvalidRequest = errors.New("invalid court request")

// UseCase covers the sitting ruler's administrative commands: treasury,
// taxes, guard rosters, heirs, and the royal prison. Every mutation either
// fully applies or fully rejects.
type UseCase struct {
	TxManager ports.TxManager
	Monarchs  ports.MonarchRepository
	Publisher ports.StatePublisher
	Notifier  ports.NotificationSink
	Metrics   ports.ThroneMetrics
	Now       func() time.Time
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

// mutate loads the monarch, verifies the requester rules, applies fn, and
// saves. fn returns a rejection reason to abort without mutating the store.
func (u UseCase) mutate(ctx context.Context, ruler string, fn func(m *royal.Monarch) ports.RejectionReason) (Response, error) {
	ruler = strings.TrimSpace(ruler)
	if ruler == "" {
		return Response{}, ErrInvalidRequest
	}

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		m, err := u.Monarchs.LoadCurrent(txCtx)
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				out = u.reject(ports.RejectNotKing)
				return nil
			}
			return err
		}
		if !m.IsActive || m.Name != ruler {
			out = u.reject(ports.RejectNotKing)
			return nil
		}
		loadedVersion := m.Version

		if reason := fn(&m); reason != "" {
			out = u.reject(reason)
			return nil
		}

		m.Touch(u.now())
		if err := u.Monarchs.SaveWithVersion(txCtx, m, loadedVersion); err != nil {
			return err
		}
		if u.Publisher != nil {
			u.Publisher.Publish(m)
		}
		out = Response{Outcome: OutcomeApplied, Monarch: &m}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

func (u UseCase) Treasury(ctx context.Context, req TreasuryRequest) (Response, error) {
	if req.Amount <= 0 {
		return Response{}, ErrInvalidRequest
	}
	switch req.Action {
	case "deposit":
		return u.mutate(ctx, req.Ruler, func(m *royal.Monarch) ports.RejectionReason {
			if !m.Deposit(req.Amount) {
				return ports.RejectInsufficientFunds
			}
			return ""
		})
	case "withdraw":
		return u.mutate(ctx, req.Ruler, func(m *royal.Monarch) ports.RejectionReason {
			if !m.Withdraw(req.Amount) {
				return ports.RejectInsufficientFunds
			}
			return ""
		})
	default:
		return Response{}, ErrInvalidRequest
	}
}

func (u UseCase) SetTax(ctx context.Context, req TaxRequest) (Response, error) {
	return u.mutate(ctx, req.Ruler, func(m *royal.Monarch) ports.RejectionReason {
		if !m.SetTaxRate(req.Rate) {
			return ports.RejectionReason("invalid_tax_rate")
		}
		if req.Alignment != "" {
			m.TaxAlignment = req.Alignment
		}
		return ""
	})
}

func (u UseCase) HireGuard(ctx context.Context, req HireGuardRequest) (Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Response{}, ErrInvalidRequest
	}
	return u.mutate(ctx, req.Ruler, func(m *royal.Monarch) ports.RejectionReason {
		if req.Monster {
			if len(m.MonsterGuards) >= royal.MaxMonsterGuards {
				return ports.RejectRosterFull
			}
			if !m.AddMonsterGuard(name, req.Level, req.FeedingCost) {
				return ports.RejectInsufficientFunds
			}
			return ""
		}
		if !m.AddGuard(name, req.Salary) {
			return ports.RejectRosterFull
		}
		return ""
	})
}

func (u UseCase) DismissGuard(ctx context.Context, req DismissGuardRequest) (Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Response{}, ErrInvalidRequest
	}
	return u.mutate(ctx, req.Ruler, func(m *royal.Monarch) ports.RejectionReason {
		removed := false
		if req.Monster {
			removed = m.RemoveMonsterGuard(name)
		} else {
			removed = m.RemoveGuard(name)
		}
		if !removed {
			return ports.RejectionReason("guard_not_found")
		}
		return ""
	})
}

func (u UseCase) Heir(ctx context.Context, req HeirRequest) (Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Response{}, ErrInvalidRequest
	}
	return u.mutate(ctx, req.Ruler, func(m *royal.Monarch) ports.RejectionReason {
		if req.Designate {
			if !m.DesignateHeir(name) {
				return ports.RejectionReason("heir_not_found")
			}
			return ""
		}
		if !m.AddHeir(royal.RoyalHeir{Name: name, Age: req.Age, ClaimStrength: 50}) {
			return ports.RejectionReason("heir_exists")
		}
		return ""
	})
}

func (u UseCase) Prison(ctx context.Context, req PrisonRequest) (Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Response{}, ErrInvalidRequest
	}
	return u.mutate(ctx, req.Ruler, func(m *royal.Monarch) ports.RejectionReason {
		var ok bool
		switch req.Action {
		case "imprison":
			ok = m.Imprison(name)
		case "release":
			ok = m.Release(name)
		case "execute":
			ok = m.Execute(name)
		default:
			return ports.RejectionReason("unknown_action")
		}
		if !ok {
			return ports.RejectionReason("prisoner_not_found")
		}
		return ""
	})
}

func (u UseCase) reject(reason ports.RejectionReason) Response {
	if u.Metrics != nil {
		u.Metrics.RecordRejected(string(reason))
	}
	return Response{Outcome: OutcomeRejected, Rejection: reason}
}
