package httpadapter

import (
	"context"
	"encoding/json"
	"testing"

	"crownhold/internal/adapter/repo/memory"
	"crownhold/internal/app/chronicle"
	"crownhold/internal/app/ports"
	"crownhold/internal/app/status"
	"crownhold/internal/app/throne"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func TestWriteError_NotFound(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, ports.ErrNotFound)

	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}

	var body map[string]map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"]["code"], "not_found"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestWriteError_Conflict(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, ports.ErrConflict)

	if got, want := ctx.Response.StatusCode(), consts.StatusConflict; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestRejectionStatus(t *testing.T) {
	if got := rejectionStatus(ports.RejectUnknownActor); got != consts.StatusNotFound {
		t.Fatalf("unknown actor: got=%d", got)
	}
	if got := rejectionStatus(ports.RejectSelfChallenge); got != consts.StatusBadRequest {
		t.Fatalf("self challenge: got=%d", got)
	}
	if got := rejectionStatus(ports.RejectSiegeCooldown); got != consts.StatusConflict {
		t.Fatalf("siege cooldown: got=%d", got)
	}
}

func TestWriteThroneResponse_Rejection(t *testing.T) {
	ctx := &app.RequestContext{}
	writeThroneResponse(ctx, throne.Response{
		Outcome:   throne.OutcomeRejected,
		Rejection: ports.RejectLevelTooLow,
	})

	if got, want := ctx.Response.StatusCode(), consts.StatusConflict; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}

	var body throne.Response
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Rejection != ports.RejectLevelTooLow {
		t.Fatalf("rejection mismatch: got=%q", body.Rejection)
	}
}

func TestKingdomStatus_VacantThrone(t *testing.T) {
	store := memory.NewStore()
	h := Handler{
		StatusUC: status.UseCase{Monarchs: memory.NewMonarchRepo(store)},
	}

	ctx := &app.RequestContext{}
	h.kingdomStatus(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}

	var body status.Response
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !body.ThroneVacant {
		t.Fatalf("expected vacant throne")
	}
}

func TestChronicle_RejectsNegativeLimit(t *testing.T) {
	store := memory.NewStore()
	h := Handler{
		ChronicleUC: chronicle.UseCase{History: memory.NewHistoryRepo(store)},
	}

	ctx := &app.RequestContext{}
	ctx.Request.SetRequestURI("/api/kingdom/chronicle?limit=-1")
	h.chronicleList(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}
