package status

import (
	"context"
	"errors"

	"crownhold/internal/app/ports"
)

// UseCase reports the kingdom's current state for dashboards and sessions.
type UseCase struct {
	Monarchs ports.MonarchRepository
}

func (u UseCase) Execute(ctx context.Context, _ Request) (Response, error) {
	m, err := u.Monarchs.LoadCurrent(ctx)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return Response{ThroneVacant: true}, nil
		}
		return Response{}, err
	}
	if !m.IsActive {
		return Response{ThroneVacant: true}, nil
	}
	return Response{
		Monarch:       &m,
		DailyIncome:   m.CalculateDailyIncome(),
		DailyExpenses: m.CalculateDailyExpenses(),
		GuardCount:    m.TotalGuardCount(),
	}, nil
}
