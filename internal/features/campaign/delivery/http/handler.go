package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stakeburn-backend/internal/common/middleware"
	"stakeburn-backend/internal/features/campaign/models"
	campaignservice "stakeburn-backend/internal/features/campaign/service"
)

type CampaignHandler struct {
	service campaignservice.CampaignService
}

func NewCampaignHandler(service campaignservice.CampaignService) *CampaignHandler {
	return &CampaignHandler{service: service}
}

// RegisterRoutes mounts the campaign API. Mutating routes require a caller
// identity header; reads are open.
func (h *CampaignHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.CallerIdentity(true)

	campaigns := router.Group("/campaigns")
	{
		campaigns.POST("", auth, h.create)
		campaigns.GET("", h.listByStatus)
		campaigns.GET("/count", h.count)
		campaigns.GET("/:id", h.getByID)
		campaigns.POST("/:id/activate", auth, h.activate)
		campaigns.POST("/:id/pause", auth, h.pause)
		campaigns.POST("/:id/resume", auth, h.resume)
		campaigns.POST("/:id/close", auth, h.close)
		campaigns.POST("/:id/stake", auth, h.stake)
		campaigns.POST("/:id/social/confirm", auth, h.confirmSocial)
		campaigns.POST("/:id/winners/select", auth, h.selectWinners)
		campaigns.POST("/:id/burn", auth, h.burn)
		campaigns.POST("/:id/terminate", auth, h.terminate)
		campaigns.GET("/:id/participants/:wallet", h.getParticipant)
		campaigns.GET("/:id/tickets/:wallet", h.getTickets)
		campaigns.GET("/:id/eligible/:wallet", h.getEligibility)
	}

	emergency := router.Group("/emergency")
	{
		emergency.POST("/pause", auth, h.emergencyPause)
		emergency.POST("/unpause", auth, h.emergencyUnpause)
		emergency.POST("/recover", auth, h.recoverTokens)
	}

	roles := router.Group("/roles")
	{
		roles.POST("/grant", auth, h.grantRole)
		roles.POST("/revoke", auth, h.revokeRole)
		roles.GET("/:wallet", h.getRole)
	}
}

func (h *CampaignHandler) create(c *gin.Context) {
	var input models.CampaignCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.service.CreateCampaign(c.Request.Context(), middleware.Caller(c), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *CampaignHandler) getByID(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	campaign, err := h.service.GetCampaign(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (h *CampaignHandler) listByStatus(c *gin.Context) {
	status := models.CampaignStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status " + string(status)})
		return
	}

	var out []*models.Campaign
	if status == "" {
		for _, s := range []models.CampaignStatus{
			models.CampaignStatusPending, models.CampaignStatusActive,
			models.CampaignStatusPaused, models.CampaignStatusFinished,
			models.CampaignStatusBurned, models.CampaignStatusTerminated,
		} {
			out = append(out, h.service.GetCampaignsByStatus(s)...)
		}
	} else {
		out = h.service.GetCampaignsByStatus(status)
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": out})
}

func (h *CampaignHandler) count(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": h.service.GetCampaignCount()})
}

func (h *CampaignHandler) activate(c *gin.Context) {
	h.lifecycle(c, h.service.ActivateCampaign)
}

func (h *CampaignHandler) pause(c *gin.Context) {
	h.lifecycle(c, h.service.PauseCampaign)
}

func (h *CampaignHandler) resume(c *gin.Context) {
	h.lifecycle(c, h.service.ResumeCampaign)
}

func (h *CampaignHandler) close(c *gin.Context) {
	h.lifecycle(c, h.service.CloseCampaign)
}

type stakeRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

func (h *CampaignHandler) stake(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	var req stakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participant, err := h.service.StakeTokens(c.Request.Context(), middleware.Caller(c), id, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participant)
}

type confirmSocialRequest struct {
	Wallet string `json:"wallet" binding:"required"`
}

func (h *CampaignHandler) confirmSocial(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	var req confirmSocialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.ConfirmSocialTasks(c.Request.Context(), middleware.Caller(c), id, req.Wallet); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "confirmed"})
}

func (h *CampaignHandler) selectWinners(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	winners, err := h.service.SelectWinners(c.Request.Context(), middleware.Caller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"winners": winners})
}

func (h *CampaignHandler) burn(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	amount, err := h.service.BurnTokens(c.Request.Context(), middleware.Caller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"burned": amount})
}

type terminateRequest struct {
	Refund bool `json:"refund"`
}

func (h *CampaignHandler) terminate(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	var req terminateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.EmergencyTerminateCampaign(c.Request.Context(), middleware.Caller(c), id, req.Refund); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "terminated"})
}

func (h *CampaignHandler) getParticipant(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	participant, err := h.service.GetParticipant(id, c.Param("wallet"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participant)
}

func (h *CampaignHandler) getTickets(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	tickets, err := h.service.GetTicketCount(id, c.Param("wallet"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

func (h *CampaignHandler) getEligibility(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	eligible, err := h.service.IsEligibleForWinning(id, c.Param("wallet"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"eligible": eligible})
}

func (h *CampaignHandler) emergencyPause(c *gin.Context) {
	if err := h.service.EmergencyPause(c.Request.Context(), middleware.Caller(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "paused"})
}

func (h *CampaignHandler) emergencyUnpause(c *gin.Context) {
	if err := h.service.EmergencyUnpause(c.Request.Context(), middleware.Caller(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "running"})
}

type recoverRequest struct {
	TokenAddress string `json:"token_address" binding:"required"`
	To           string `json:"to" binding:"required"`
}

func (h *CampaignHandler) recoverTokens(c *gin.Context) {
	var req recoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.EmergencyRecoverTokens(c.Request.Context(), middleware.Caller(c), req.TokenAddress, req.To); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recovered"})
}

type roleRequest struct {
	Wallet string `json:"wallet" binding:"required"`
	Role   string `json:"role"`
}

func (h *CampaignHandler) grantRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	capability := models.ParseCapability(req.Role)
	if err := h.service.GrantRole(c.Request.Context(), middleware.Caller(c), req.Wallet, capability); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "granted"})
}

func (h *CampaignHandler) revokeRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.RevokeRole(c.Request.Context(), middleware.Caller(c), req.Wallet); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "revoked"})
}

func (h *CampaignHandler) getRole(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"role": h.service.RoleOf(c.Param("wallet")).String()})
}

func (h *CampaignHandler) lifecycle(c *gin.Context, op func(ctx context.Context, caller string, id int64) error) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	if err := op(c.Request.Context(), middleware.Caller(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func campaignID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
		return 0, false
	}
	return id, true
}
