package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mccajr2/reading-rewards/internal/api/handler/v1/request"
	"github.com/mccajr2/reading-rewards/internal/api/handler/v1/response"
	"github.com/mccajr2/reading-rewards/internal/domain"
	"github.com/mccajr2/reading-rewards/internal/service"
)

type RewardService interface {
	List(ctx context.Context, userID uint, page, perPage int) ([]domain.Reward, int64, error)
	Summary(ctx context.Context, userID uint) (domain.RewardSummary, error)
	Spend(ctx context.Context, userID uint, amount float64, note string) (domain.Reward, error)
	Payout(ctx context.Context, childID uint, amount float64, note string) (domain.Reward, error)
}

type RewardHandler struct {
	svc  RewardService
	uSvc UserService
}

func NewRewardHandler(svc RewardService, uSvc UserService) *RewardHandler {
	return &RewardHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListRewards godoc
// @Summary      List the caller's reward ledger, newest first
// @Tags         rewards
// @Produce      json
// @Param        page      query     int  false  "page number, starting at 1"
// @Param        per_page  query     int  false  "page size, defaults to 20"
// @Success      200       {object}  response.RewardListResponse
// @Failure      401       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /rewards [get]
// @Security BearerAuth
func (h *RewardHandler) HandleListRewards(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	page := parsePageQuery(ctx, "page", 1)
	perPage := parsePageQuery(ctx, "per_page", 20)

	rewards, total, err := h.svc.List(ctx.Request.Context(), user.ID, page, perPage)
	if err != nil {
		err = fmt.Errorf("v1.HandleListRewards -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.RewardListResponse{
		Rewards: rewards,
		Page:    page,
		PerPage: perPage,
		Total:   total,
	})
}

// HandleRewardsSummary godoc
// @Summary      Get the caller's reward totals and balance
// @Tags         rewards
// @Produce      json
// @Success      200  {object}  domain.RewardSummary
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /rewards/summary [get]
// @Security BearerAuth
func (h *RewardHandler) HandleRewardsSummary(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	summary, err := h.svc.Summary(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleRewardsSummary -> h.svc.Summary -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// HandleSpend godoc
// @Summary      Record a spend against the caller's balance
// @Tags         rewards
// @Accept       json
// @Produce      json
// @Param        request  body      request.SpendRequest true "request body"
// @Success      201      {object}  domain.Reward
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /rewards/spend [post]
// @Security BearerAuth
func (h *RewardHandler) HandleSpend(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SpendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	reward, err := h.svc.Spend(ctx.Request.Context(), user.ID, req.Amount, req.Note)
	if err != nil {
		if errors.Is(err, service.ErrNonPositiveAmount) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleSpend -> h.svc.Spend -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, reward)
}

func parsePageQuery(ctx *gin.Context, name string, fallback int) int {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return parsed
}
