package controllers

import (
	"net/http"

	"cafeorder-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requireCafeID reads the tenant id the auth middleware resolved for this
// request. Every admin query must be scoped by it.
func requireCafeID(c *gin.Context) (uuid.UUID, bool) {
	cafeID, exists := c.Get("cafeId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Cafe ID not found in context")
		return uuid.Nil, false
	}
	cafeUUID, err := uuid.Parse(cafeID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid cafe ID format")
		return uuid.Nil, false
	}
	return cafeUUID, true
}

// parseIDParam parses a uuid path parameter, answering 400 on garbage.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
