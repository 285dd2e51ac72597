package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mccajr2/reading-rewards/internal/api/handler/v1/request"
	"github.com/mccajr2/reading-rewards/internal/api/handler/v1/response"
	"github.com/mccajr2/reading-rewards/internal/domain"
	"github.com/mccajr2/reading-rewards/internal/service"
)

// ParentHandler serves the endpoints only verified parents reach. The
// router guards them with a role check, so handlers here only have to
// verify ownership of the targeted child.
type ParentHandler struct {
	uSvc UserService
	rSvc RewardService
}

func NewParentHandler(uSvc UserService, rSvc RewardService) *ParentHandler {
	return &ParentHandler{
		uSvc: uSvc,
		rSvc: rSvc,
	}
}

// HandleGetKids godoc
// @Summary      List the caller's children
// @Tags         parent
// @Produce      json
// @Success      200  {array}   response.KidResponse
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /parent/kids [get]
// @Security BearerAuth
func (h *ParentHandler) HandleGetKids(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	children, err := h.uSvc.GetChildren(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetKids -> h.uSvc.GetChildren -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	kids := make([]response.KidResponse, 0, len(children))
	for _, child := range children {
		kids = append(kids, response.KidResponse{
			ID:        child.ID,
			FirstName: child.FirstName,
			Username:  child.Username,
		})
	}

	ctx.JSON(http.StatusOK, kids)
}

// HandleCreateKid godoc
// @Summary      Create a child account under the caller
// @Tags         parent
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateKidRequest true "request body"
// @Success      201      {object}  response.KidResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /parent/kids [post]
// @Security BearerAuth
func (h *ParentHandler) HandleCreateKid(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateKidRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	child, err := h.uSvc.CreateChild(ctx.Request.Context(), user.ID, domain.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserUsernameExists) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateKid -> h.uSvc.CreateChild -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.KidResponse{
		ID:        child.ID,
		FirstName: child.FirstName,
		Username:  child.Username,
	})
}

// HandleResetChildPassword godoc
// @Summary      Reset one of the caller's children's password
// @Tags         parent
// @Accept       json
// @Produce      json
// @Param        request  body      request.ResetChildPasswordRequest true "request body"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /parent/reset-child-password [post]
// @Security BearerAuth
func (h *ParentHandler) HandleResetChildPassword(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ResetChildPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err := h.uSvc.ResetChildPassword(ctx.Request.Context(), user.ID, req.ChildUsername, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrChildNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("child", "username", req.ChildUsername))
			return
		}

		err = fmt.Errorf("v1.HandleResetChildPassword -> h.uSvc.ResetChildPassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "password updated"})
}

// HandlePayout godoc
// @Summary      Record a payout against a child's balance
// @Tags         parent
// @Accept       json
// @Produce      json
// @Param        kidID    path      int  true  "child id"
// @Param        request  body      request.PayoutRequest true "request body"
// @Success      201      {object}  domain.Reward
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /parent/kids/{kidID}/payout [post]
// @Security BearerAuth
func (h *ParentHandler) HandlePayout(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	kidID, ok := parseUintParam(ctx, "kidID")
	if !ok {
		return
	}

	var req request.PayoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	child, err := h.uSvc.GetOwnChild(ctx.Request.Context(), user.ID, kidID)
	if err != nil {
		if errors.Is(err, service.ErrChildNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("child", "kidID", kidID))
			return
		}

		err = fmt.Errorf("v1.HandlePayout -> h.uSvc.GetOwnChild -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	reward, err := h.rSvc.Payout(ctx.Request.Context(), child.ID, req.Amount, req.Note)
	if err != nil {
		if errors.Is(err, service.ErrNonPositiveAmount) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandlePayout -> h.rSvc.Payout -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, reward)
}

// HandleKidRewards godoc
// @Summary      List a child's reward ledger, newest first
// @Tags         parent
// @Produce      json
// @Param        kidID     path      int  true   "child id"
// @Param        page      query     int  false  "page number, starting at 1"
// @Param        per_page  query     int  false  "page size, defaults to 20"
// @Success      200       {object}  response.RewardListResponse
// @Failure      401       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /parent/kids/{kidID}/rewards [get]
// @Security BearerAuth
func (h *ParentHandler) HandleKidRewards(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	kidID, ok := parseUintParam(ctx, "kidID")
	if !ok {
		return
	}

	child, err := h.uSvc.GetOwnChild(ctx.Request.Context(), user.ID, kidID)
	if err != nil {
		if errors.Is(err, service.ErrChildNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("child", "kidID", kidID))
			return
		}

		err = fmt.Errorf("v1.HandleKidRewards -> h.uSvc.GetOwnChild -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	page := parsePageQuery(ctx, "page", 1)
	perPage := parsePageQuery(ctx, "per_page", 20)

	rewards, total, err := h.rSvc.List(ctx.Request.Context(), child.ID, page, perPage)
	if err != nil {
		err = fmt.Errorf("v1.HandleKidRewards -> h.rSvc.List -> %w", err)
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
