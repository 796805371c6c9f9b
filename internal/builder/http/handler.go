package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/creator-booking-backend/internal/auth"
	"github.com/nekogravitycat/creator-booking-backend/internal/builder"
	"github.com/nekogravitycat/creator-booking-backend/internal/pkg/response"
)

type Handler struct {
	service builder.Service
}

func NewHandler(service builder.Service) *Handler {
	return &Handler{service: service}
}

// respond writes the view produced by an action, or its error.
func respond(c *gin.Context, v *builder.View, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewViewResponse(v))
}

// bindJSON binds the body into req and answers 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return false
	}
	return true
}

func bindCreatorURI(c *gin.Context) (string, bool) {
	var uri CreatorURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return "", false
	}
	return uri.CreatorID, true
}

// Get returns the caller's builder session, starting a fresh one if none exists.
func (h *Handler) Get(c *gin.Context) {
	v, err := h.service.Get(c.Request.Context(), auth.GetUserID(c))
	respond(c, v, err)
}

func (h *Handler) Reset(c *gin.Context) {
	v, err := h.service.Reset(c.Request.Context(), auth.GetUserID(c))
	respond(c, v, err)
}

func (h *Handler) ChooseSetup(c *gin.Context) {
	var req ChooseSetupRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.service.ChooseSetup(c.Request.Context(), auth.GetUserID(c), *req.OwnTalent)
	respond(c, v, err)
}

func (h *Handler) Next(c *gin.Context) {
	v, err := h.service.Next(c.Request.Context(), auth.GetUserID(c))
	respond(c, v, err)
}

func (h *Handler) Back(c *gin.Context) {
	v, err := h.service.Back(c.Request.Context(), auth.GetUserID(c))
	respond(c, v, err)
}

func (h *Handler) AddCreator(c *gin.Context) {
	var req AddCreatorRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.service.AddCreator(c.Request.Context(), auth.GetUserID(c), req.CreatorID)
	respond(c, v, err)
}

// UpdateCreator changes the quantity and sample of one line. Either both
// changes are stored or neither.
func (h *Handler) UpdateCreator(c *gin.Context) {
	creatorID, ok := bindCreatorURI(c)
	if !ok {
		return
	}
	var req UpdateCreatorRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Quantity == nil && req.SampleID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}
	v, err := h.service.UpdateCreator(c.Request.Context(), auth.GetUserID(c), creatorID, req.Quantity, req.SampleID)
	respond(c, v, err)
}

func (h *Handler) RemoveCreator(c *gin.Context) {
	creatorID, ok := bindCreatorURI(c)
	if !ok {
		return
	}
	v, err := h.service.RemoveCreator(c.Request.Context(), auth.GetUserID(c), creatorID)
	respond(c, v, err)
}

func (h *Handler) SetStudio(c *gin.Context) {
	var req SetStudioRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.service.SetStudio(c.Request.Context(), auth.GetUserID(c), req.StudioID)
	respond(c, v, err)
}

func (h *Handler) ClearStudio(c *gin.Context) {
	v, err := h.service.ClearStudio(c.Request.Context(), auth.GetUserID(c))
	respond(c, v, err)
}

func (h *Handler) SetStyle(c *gin.Context) {
	var req SetStyleRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.service.SetStyle(c.Request.Context(), auth.GetUserID(c), req.Style)
	respond(c, v, err)
}

func (h *Handler) SetQuantity(c *gin.Context) {
	var req SetQuantityRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.service.SetGlobalQuantity(c.Request.Context(), auth.GetUserID(c), req.Quantity)
	respond(c, v, err)
}

func (h *Handler) SetDate(c *gin.Context) {
	var req SetDateRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.service.SetDate(c.Request.Context(), auth.GetUserID(c), req.Date)
	respond(c, v, err)
}

func (h *Handler) SetTime(c *gin.Context) {
	var req SetTimeRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.service.SetTime(c.Request.Context(), auth.GetUserID(c), req.Time)
	respond(c, v, err)
}

func (h *Handler) RefreshAvailability(c *gin.Context) {
	v, err := h.service.RefreshAvailability(c.Request.Context(), auth.GetUserID(c))
	respond(c, v, err)
}

// Submit turns the draft into a pending booking request.
func (h *Handler) Submit(c *gin.Context) {
	userID := auth.GetUserID(c)
	b, err := h.service.Submit(c.Request.Context(), userID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, SubmitResponse{
		BookingID: b.ID,
		Status:    string(b.Status),
		Total:     b.Total,
	})
}
