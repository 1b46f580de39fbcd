package controllers

import (
	"context"
	"errors"
	"net/http"

	"celebrato-backend/services"
	"celebrato-backend/utils"

	"github.com/gin-gonic/gin"
)

// TestMessageSender is the part of services.GreetingService used here.
type TestMessageSender interface {
	SendTestMessage(ctx context.Context, phone, category string) (bool, error)
}

type SendTestMessageInput struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Type        string `json:"type" binding:"required"`
}

type MessageController struct {
	Greetings TestMessageSender
}

// SendTestMessage sends a random template of the requested type right away
func (m MessageController) SendTestMessage(c *gin.Context) {
	var input SendTestMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidatePhone(input.PhoneNumber) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	ok, err := m.Greetings.SendTestMessage(c.Request.Context(), utils.NormalizePhone(input.PhoneNumber), input.Type)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCategory):
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid template type")
		case errors.Is(err, services.ErrTemplateNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "No templates found for type: "+input.Type)
		case errors.Is(err, services.ErrTransportFailure):
			utils.RespondWithError(c, http.StatusBadGateway, "Failed to send SMS")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load templates")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": ok})
}
