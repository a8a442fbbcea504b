package handler

import (
	"github.com/gin-gonic/gin"
	appinv "github.com/shopdesk/backoffice/internal/application/inventory"
)

// ReceivingSlipHandler serves goods receipt endpoints
type ReceivingSlipHandler struct {
	BaseHandler
	slipService *appinv.ReceivingSlipService
}

// NewReceivingSlipHandler creates a new ReceivingSlipHandler
func NewReceivingSlipHandler(slipService *appinv.ReceivingSlipService) *ReceivingSlipHandler {
	return &ReceivingSlipHandler{slipService: slipService}
}

// Create godoc
// @Summary      Create a receiving slip
// @Description  Create a draft goods receipt with optional items
// @Tags         receiving-slips
// @Accept       json
// @Produce      json
// @Param        request body inventory.CreateReceivingSlipRequest true "Receiving slip creation request"
// @Success      201 {object} dto.Response{data=inventory.ReceivingSlipResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /warehouse/receiving-slips [post]
func (h *ReceivingSlipHandler) Create(c *gin.Context) {
	var req appinv.CreateReceivingSlipRequest
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
// @Summary      Get receiving slip by ID
// @Tags         receiving-slips
// @Accept       json
// @Produce      json
// @Param        id path int true "Receiving slip ID"
// @Success      200 {object} dto.Response{data=inventory.ReceivingSlipResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /warehouse/receiving-slips/{id} [get]
func (h *ReceivingSlipHandler) GetByID(c *gin.Context) {
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
// @Summary      Delete receiving slip
// @Description  Only draft slips can be deleted
// @Tags         receiving-slips
// @Accept       json
// @Produce      json
// @Param        id path int true "Receiving slip ID"
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /warehouse/receiving-slips/{id} [delete]
func (h *ReceivingSlipHandler) Delete(c *gin.Context) {
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
// @Summary      Add receiving slip item
// @Tags         receiving-slips
// @Accept       json
// @Produce      json
// @Param        id path int true "Receiving slip ID"
// @Param        request body inventory.ReceivingSlipItemInput true "Item"
// @Success      201 {object} dto.Response{data=inventory.ReceivingSlipResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /warehouse/receiving-slips/{id}/items [post]
func (h *ReceivingSlipHandler) AddItem(c *gin.Context) {
	slipID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appinv.ReceivingSlipItemInput
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

// UpdateItem godoc
// @Summary      Update receiving slip item
// @Tags         receiving-slips
// @Accept       json
// @Produce      json
// @Param        id path int true "Receiving slip ID"
// @Param        itemId path int true "Item ID"
// @Param        request body inventory.ReceivingSlipItemInput true "Item"
// @Success      200 {object} dto.Response{data=inventory.ReceivingSlipResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /warehouse/receiving-slips/{id}/items/{itemId} [put]
func (h *ReceivingSlipHandler) UpdateItem(c *gin.Context) {
	slipID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "itemId")
	if !ok {
		return
	}
	var req appinv.ReceivingSlipItemInput
	if !h.bindJSON(c, &req) {
		return
	}

	slip, err := h.slipService.UpdateItem(c.Request.Context(), slipID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, slip)
}

// RemoveItem godoc
// @Summary      Remove receiving slip item
// @Tags         receiving-slips
// @Accept       json
// @Produce      json
// @Param        id path int true "Receiving slip ID"
// @Param        itemId path int true "Item ID"
// @Success      200 {object} dto.Response{data=inventory.ReceivingSlipResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /warehouse/receiving-slips/{id}/items/{itemId} [delete]
func (h *ReceivingSlipHandler) RemoveItem(c *gin.Context) {
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
// @Summary      Confirm receiving slip
// @Description  Stock of every referenced product increases by the slip quantities
// @Tags         receiving-slips
// @Accept       json
// @Produce      json
// @Param        id path int true "Receiving slip ID"
// @Param        Idempotency-Key header string false "Rejects a repeated request within the retention window"
// @Success      200 {object} dto.Response{data=inventory.ConfirmReceivingSlipResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /warehouse/receiving-slips/{id}/confirm [post]
func (h *ReceivingSlipHandler) Confirm(c *gin.Context) {
	slipID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.slipService.Confirm(c.Request.Context(), slipID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
