package v1

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParentRouter(rewards *stubRewardService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewParentHandler(newStubUsers(), rewards)

	router := gin.New()
	router.GET("/parent/kids", asUser(1), handler.HandleGetKids)
	router.POST("/parent/kids", asUser(1), handler.HandleCreateKid)
	router.POST("/parent/kids/:kidID/payout", asUser(1), handler.HandlePayout)
	router.GET("/parent/kids/:kidID/rewards", asUser(1), handler.HandleKidRewards)

	return router
}

func TestParentHandler_HandleGetKids(t *testing.T) {
	router := newParentRouter(&stubRewardService{})

	req := httptest.NewRequest(http.MethodGet, "/parent/kids", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"ben"`)
	// The kid listing never leaks password hashes or emails.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestParentHandler_HandleCreateKid(t *testing.T) {
	router := newParentRouter(&stubRewardService{})

	req := httptest.NewRequest(http.MethodPost, "/parent/kids",
		strings.NewReader(`{"username": "cara", "first_name": "Cara", "password": "password1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"cara"`)
}

func TestParentHandler_HandleCreateKid_WeakPassword(t *testing.T) {
	router := newParentRouter(&stubRewardService{})

	req := httptest.NewRequest(http.MethodPost, "/parent/kids",
		strings.NewReader(`{"username": "cara", "first_name": "Cara", "password": "short"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParentHandler_HandlePayout(t *testing.T) {
	rewards := &stubRewardService{}
	router := newParentRouter(rewards)

	req := httptest.NewRequest(http.MethodPost, "/parent/kids/2/payout",
		strings.NewReader(`{"amount": 5, "note": "weekly allowance"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, rewards.payouts, 1)
	assert.Equal(t, uint(2), rewards.payouts[0].UserID)
	assert.Equal(t, 5.0, rewards.payouts[0].Amount)
}

func TestParentHandler_HandlePayout_NotOwnChild(t *testing.T) {
	rewards := &stubRewardService{}
	router := newParentRouter(rewards)

	req := httptest.NewRequest(http.MethodPost, "/parent/kids/99/payout",
		strings.NewReader(`{"amount": 5}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rewards.payouts)
}

func TestParentHandler_HandleKidRewards_NotOwnChild(t *testing.T) {
	router := newParentRouter(&stubRewardService{})

	req := httptest.NewRequest(http.MethodGet, "/parent/kids/99/rewards", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
