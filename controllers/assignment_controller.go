// controllers/assignment_controller.go
package controllers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tour-backend/services"
	"tour-backend/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type AssignmentRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	TourDate  string `json:"tour_date" binding:"required"`

	// Manual overrides layered on top of the computed proposal:
	// reservation id -> target tour id.
	Overrides map[string]string `json:"overrides,omitempty"`
}

// ---------------------------
// Controller
// ---------------------------

type AssignmentController struct {
	Store services.AssignmentStore
}

func NewAssignmentController(store services.AssignmentStore) *AssignmentController {
	return &AssignmentController{Store: store}
}

// openSession loads the snapshot, builds the proposal and applies the
// request's overrides in a deterministic (sorted reservation id) order.
// Responds with the appropriate error itself and returns nil on failure.
func (ctrl *AssignmentController) openSession(c *gin.Context, req AssignmentRequest) *services.AssignmentSession {
	session, err := services.NewAssignmentSession(c.Request.Context(), ctrl.Store, req.ProductID, req.TourDate)
	if err != nil {
		if errors.Is(err, services.ErrMissingKey) {
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.missingKey", "product_id and tour_date are required")
			return nil
		}
		utils.GetLogger().Error("snapshot load failed",
			zap.String("product_id", req.ProductID),
			zap.String("tour_date", req.TourDate),
			zap.Error(err),
		)
		utils.JSONErrorCode(c, http.StatusBadGateway, "error.loadFailed", "failed to load assignment data")
		return nil
	}

	resIDs := make([]string, 0, len(req.Overrides))
	for resID := range req.Overrides {
		resIDs = append(resIDs, resID)
	}
	sort.Strings(resIDs)
	for _, resID := range resIDs {
		if err := session.Override(resID, req.Overrides[resID]); err != nil {
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidOverride", err.Error())
			return nil
		}
	}
	return session
}

// Preview (POST /api/assignments/preview) computes the proposal for one
// product+date group without writing anything.
func (ctrl *AssignmentController) Preview(c *gin.Context) {
	var req AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	session := ctrl.openSession(c, req)
	if session == nil {
		return
	}

	moves, hasChanges := session.Diff()
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"partition":   session.Effective(),
		"rule_moves":  session.Proposal().Moves,
		"overflows":   session.Proposal().Overflows,
		"diff":        moves,
		"has_changes": hasChanges,
	})
}

// Commit (POST /api/assignments/commit) recomputes the proposal, applies the
// overrides and persists the result, one write per changed tour. Partial
// failures return a per-tour report; succeeded tours stay committed.
func (ctrl *AssignmentController) Commit(c *gin.Context) {
	var req AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	session := ctrl.openSession(c, req)
	if session == nil {
		return
	}

	report, err := session.Commit(c.Request.Context())
	if err != nil {
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	if !report.Success() {
		utils.GetLogger().Warn("assignment commit partially failed",
			zap.String("product_id", req.ProductID),
			zap.String("tour_date", req.TourDate),
			zap.Int("committed", len(report.Committed)),
			zap.Int("failed", len(report.Failed)),
		)
		c.JSON(http.StatusMultiStatus, gin.H{
			"success": false,
			"data":    report,
			"error": gin.H{
				"code":    "error.commitPartialFailure",
				"message": "some tour writes failed; succeeded tours remain committed",
			},
		})
		return
	}

	utils.JSONSuccess(c, http.StatusOK, report)
}
