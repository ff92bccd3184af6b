package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"crownhold/internal/app/chronicle"
	"crownhold/internal/app/court"
	"crownhold/internal/app/ports"
	"crownhold/internal/app/siege"
	"crownhold/internal/app/status"
	"crownhold/internal/app/throne"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	ThroneUC    throne.UseCase
	SiegeUC     siege.UseCase
	CourtUC     court.UseCase
	StatusUC    status.UseCase
	ChronicleUC chronicle.UseCase
	KPI         kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	th := s.Group("/api/throne")
	th.POST("/challenge", h.challenge)
	th.POST("/abdicate", h.abdicate)
	th.POST("/claim", h.claim)

	sg := s.Group("/api/siege")
	sg.POST("/start", h.siegeStart)
	sg.GET("/:id", h.siegeStatus)

	ct := s.Group("/api/court")
	ct.POST("/treasury", h.treasury)
	ct.POST("/tax", h.tax)
	ct.POST("/guards/hire", h.hireGuard)
	ct.POST("/guards/dismiss", h.dismissGuard)
	ct.POST("/heir", h.heir)
	ct.POST("/prison", h.prison)

	kd := s.Group("/api/kingdom")
	kd.GET("/status", h.kingdomStatus)
	kd.GET("/chronicle", h.chronicleList)

	s.GET("/ops/kpi", h.kpi)
}

func (h Handler) challenge(c context.Context, ctx *app.RequestContext) {
	var body throne.ChallengeRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ThroneUC.Challenge(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeThroneResponse(ctx, resp)
}

func (h Handler) abdicate(c context.Context, ctx *app.RequestContext) {
	var body throne.AbdicateRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ThroneUC.Abdicate(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeThroneResponse(ctx, resp)
}

func (h Handler) claim(c context.Context, ctx *app.RequestContext) {
	var body throne.ClaimRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ThroneUC.Claim(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeThroneResponse(ctx, resp)
}

func (h Handler) siegeStart(c context.Context, ctx *app.RequestContext) {
	var body siege.StartRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.SiegeUC.Start(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if resp.Outcome == siege.OutcomeRejected {
		ctx.JSON(rejectionStatus(resp.Rejection), resp)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) siegeStatus(c context.Context, ctx *app.RequestContext) {
	id := string(ctx.Param("id"))
	resp, err := h.SiegeUC.Status(c, siege.StatusRequest{SiegeID: id})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) treasury(c context.Context, ctx *app.RequestContext) {
	var body court.TreasuryRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.CourtUC.Treasury(c, body)
	h.writeCourt(ctx, resp, err)
}

func (h Handler) tax(c context.Context, ctx *app.RequestContext) {
	var body court.TaxRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.CourtUC.SetTax(c, body)
	h.writeCourt(ctx, resp, err)
}

func (h Handler) hireGuard(c context.Context, ctx *app.RequestContext) {
	var body court.HireGuardRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.CourtUC.HireGuard(c, body)
	h.writeCourt(ctx, resp, err)
}

func (h Handler) dismissGuard(c context.Context, ctx *app.RequestContext) {
	var body court.DismissGuardRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.CourtUC.DismissGuard(c, body)
	h.writeCourt(ctx, resp, err)
}

func (h Handler) heir(c context.Context, ctx *app.RequestContext) {
	var body court.HeirRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.CourtUC.Heir(c, body)
	h.writeCourt(ctx, resp, err)
}

func (h Handler) prison(c context.Context, ctx *app.RequestContext) {
	var body court.PrisonRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.CourtUC.Prison(c, body)
	h.writeCourt(ctx, resp, err)
}

func (h Handler) writeCourt(ctx *app.RequestContext, resp court.Response, err error) {
	if err != nil {
		writeError(ctx, err)
		return
	}
	if resp.Outcome == court.OutcomeRejected {
		ctx.JSON(rejectionStatus(resp.Rejection), resp)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) kingdomStatus(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) chronicleList(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	if limit < 0 {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "limit must not be negative")
		return
	}
	resp, err := h.ChronicleUC.Execute(c, chronicle.Request{Limit: limit})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func writeThroneResponse(ctx *app.RequestContext, resp throne.Response) {
	if resp.Outcome == throne.OutcomeRejected {
		ctx.JSON(rejectionStatus(resp.Rejection), resp)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

// rejectionStatus separates caller mistakes from state conflicts.
func rejectionStatus(reason ports.RejectionReason) int {
	switch reason {
	case ports.RejectUnknownActor:
		return consts.StatusNotFound
	case ports.RejectSelfChallenge, ports.RejectNoTeam:
		return consts.StatusBadRequest
	default:
		return consts.StatusConflict
	}
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, chronicle.ErrInvalidRequest),
		errors.Is(err, court.ErrInvalidRequest),
		errors.Is(err, siege.ErrInvalidRequest),
		errors.Is(err, throne.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
