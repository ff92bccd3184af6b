package chronicle

import (
	"context"
	"errors"

	"crownhold/internal/app/ports"
	"crownhold/internal/domain/royal"
)

var ErrInvalidRequest = errors.New("invalid chronicle request")

type Request struct {
	Limit int `json:"limit,omitempty"`
}

type Response struct {
	Records []royal.MonarchRecord `json:"records"`
}

// UseCase reads the chronicle of past reigns.
type UseCase struct {
	History ports.HistoryRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit == 0 || limit > royal.MonarchHistoryCap {
		limit = royal.MonarchHistoryCap
	}
	records, err := u.History.List(ctx, limit)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return Response{Records: []royal.MonarchRecord{}}, nil
		}
		return Response{}, err
	}
	return Response{Records: records}, nil
}
