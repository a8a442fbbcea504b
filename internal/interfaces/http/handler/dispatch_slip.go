package handler

import (
	"github.com/gin-gonic/gin"
	appinv "github.com/shopdesk/backoffice/internal/application/inventory"
)

// DispatchSlipHandler serves goods issue endpoints
type DispatchSlipHandler struct {
	BaseHandler
	slipService *appinv.DispatchSlipService
}

// NewDispatchSlipHandler creates a new DispatchSlipHandler
func NewDispatchSlipHandler(slipService *appinv.DispatchSlipService) *DispatchSlipHandler {
	return &DispatchSlipHandler{slipService: slipService}
}

// Create godoc
// @Summary      Create a dispatch slip
// @Description  Create a draft goods issue for an order
// @Tags         dispatch-slips
// @Accept       json
// @Produce      json
// @Param        request body inventory.CreateDispatchSlipRequest true "Dispatch slip creation request"
// @Success      201 {object} dto.Response{data=inventory.DispatchSlipResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /warehouse/dispatch-slips [post]
func (h *DispatchSlipHandler) Create(c *gin.Context) {
	var req appinv.CreateDispatchSlipRequest
	if !h.bindJSON(c, &req) {
		return
	}

	slip, err := h.slipService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, slip)
}

// GetByID godoc
// @Summary      Get dispatch slip by ID
// @Tags         dispatch-slips
// @Accept       json
// @Produce      json
// @Param        id path int true "Dispatch slip ID"
// @Success      200 {object} dto.Response{data=inventory.DispatchSlipResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /warehouse/dispatch-slips/{id} [get]
func (h *DispatchSlipHandler) GetByID(c *gin.Context) {
	slipID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	slip, err := h.slipService.GetByID(c.Request.Context(), slipID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, slip)
}

// Delete godoc
// @Summary      Delete dispatch slip
// @Description  Only draft slips can be deleted
// @Tags         dispatch-slips
// @Accept       json
// @Produce      json
// @Param        id path int true "Dispatch slip ID"
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /warehouse/dispatch-slips/{id} [delete]
func (h *DispatchSlipHandler) Delete(c *gin.Context) {
	slipID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.slipService.Delete(c.Request.Context(), slipID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddItem godoc
// @Summary      Add dispatch slip item
// @Tags         dispatch-slips
// @Accept       json
// @Produce      json
// @Param        id path int true "Dispatch slip ID"
// @Param        request body inventory.DispatchSlipItemInput true "Item"
// @Success      201 {object} dto.Response{data=inventory.DispatchSlipResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /warehouse/dispatch-slips/{id}/items [post]
func (h *DispatchSlipHandler) AddItem(c *gin.Context) {
	slipID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appinv.DispatchSlipItemInput
	if !h.bindJSON(c, &req) {
		return
	}

	slip, err := h.slipService.AddItem(c.Request.Context(), slipID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, slip)
}

// RemoveItem godoc
// @Summary      Remove dispatch slip item
// @Tags         dispatch-slips
// @Accept       json
// @Produce      json
// @Param        id path int true "Dispatch slip ID"
// @Param        itemId path int true "Item ID"
// @Success      200 {object} dto.Response{data=inventory.DispatchSlipResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /warehouse/dispatch-slips/{id}/items/{itemId} [delete]
func (h *DispatchSlipHandler) RemoveItem(c *gin.Context) {
	slipID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "itemId")
	if !ok {
		return
	}

	slip, err := h.slipService.RemoveItem(c.Request.Context(), slipID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, slip)
}

// Confirm godoc
// @Summary      Confirm dispatch slip
// @Tags         dispatch-slips
// @Accept       json
// @Produce      json
// @Param        id path int true "Dispatch slip ID"
// @Param        Idempotency-Key header string false "Rejects a repeated request within the retention window"
// @Success      200 {object} dto.Response{data=inventory.DispatchSlipResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /warehouse/dispatch-slips/{id}/confirm [post]
func (h *DispatchSlipHandler) Confirm(c *gin.Context) {
	slipID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	slip, err := h.slipService.Confirm(c.Request.Context(), slipID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, slip)
}
