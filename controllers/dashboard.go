package controllers

import (
	"net/http"
	"time"

	"celebrato-backend/config"
	"celebrato-backend/models"
	"celebrato-backend/services"
	"celebrato-backend/utils"

	"github.com/gin-gonic/gin"
)

const upcomingHorizonDays = 7

func GetDashboardOverview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var contacts []models.Contact
	if err := config.DB.Where("user_id = ?", userID).Find(&contacts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve contacts")
		return
	}

	var templateCount int64
	if err := config.DB.Model(&models.MessageTemplate{}).Count(&templateCount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count templates")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalContacts":  len(contacts),
		"totalTemplates": templateCount,
		"upcomingEvents": services.UpcomingEvents(time.Now(), contacts, upcomingHorizonDays),
	})
}
