// controllers/team_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"tour-backend/models"
	"tour-backend/services"
	"tour-backend/utils"
)

// isDuplicateEntry matches MySQL error 1062 (duplicate key), with a string
// fallback for other drivers.
func isDuplicateEntry(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	return strings.Contains(err.Error(), "Duplicate entry") || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var teamMemberSvc services.TeamMemberService

// GetTeamMembers (GET /api/team-members)
func GetTeamMembers(c *gin.Context) {
	members, err := teamMemberSvc.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve team members")
		return
	}
	c.JSON(http.StatusOK, members)
}

// GetTeamMember (GET /api/team-members/:email)
func GetTeamMember(c *gin.Context) {
	member, err := teamMemberSvc.GetByEmail(c.Param("email"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONErrorCode(c, http.StatusNotFound, "error.teamMemberNotFound", "team member not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, member)
}

// CreateTeamMember (POST /api/team-members)
func CreateTeamMember(c *gin.Context) {
	var member models.TeamMember
	if err := c.ShouldBindJSON(&member); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	member.Email = strings.ToLower(strings.TrimSpace(member.Email))
	if member.Email == "" {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", "email is required")
		return
	}

	if err := teamMemberSvc.Create(member); err != nil {
		if isDuplicateEntry(err) {
			utils.JSONErrorCode(c, http.StatusConflict, "error.duplicate", "team member already exists")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "database error")
		return
	}
	c.JSON(http.StatusCreated, member)
}

// UpdateTeamMember (PATCH /api/team-members/:email)
func UpdateTeamMember(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	if err := teamMemberSvc.Update(c.Param("email"), updates); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "update failed")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "team member updated"})
}

// DeleteTeamMember (DELETE /api/team-members/:email)
func DeleteTeamMember(c *gin.Context) {
	if err := teamMemberSvc.Delete(c.Param("email")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete team member")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "team member deleted"})
}
