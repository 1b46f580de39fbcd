package controllers

import (
	"errors"
	"net/http"

	"celebrato-backend/config"
	"celebrato-backend/models"
	"celebrato-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateTemplateInput defines the expected JSON structure
type CreateTemplateInput struct {
	Type    string `json:"type" binding:"required,oneof=birthday anniversary"`
	Content string `json:"content" binding:"required"`
	Design  string `json:"design" binding:"required"`
}

// UpdateTemplateInput only allows content and design to change
type UpdateTemplateInput struct {
	Content string `json:"content" binding:"required"`
	Design  string `json:"design" binding:"required"`
}

// CreateTemplate adds a message template to the shared pool
func CreateTemplate(c *gin.Context) {
	var input CreateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !models.ValidDesign(input.Design) {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown design")
		return
	}

	template := models.MessageTemplate{
		Category: models.Category(input.Type),
		Content:  input.Content,
		Design:   input.Design,
	}
	if err := config.DB.Create(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create template")
		return
	}

	c.JSON(http.StatusCreated, template)
}

// GetTemplates lists templates, optionally filtered by ?type=
func GetTemplates(c *gin.Context) {
	query := config.DB.Order("created_at ASC, id ASC")
	if category := c.Query("type"); category != "" {
		if !models.Category(category).Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid template type")
			return
		}
		query = query.Where("type = ?", category)
	}

	var templates []models.MessageTemplate
	if err := query.Find(&templates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve templates")
		return
	}

	c.JSON(http.StatusOK, templates)
}

// UpdateTemplate updates an existing template
func UpdateTemplate(c *gin.Context) {
	templateID, ok := parseIDParam(c, "template")
	if !ok {
		return
	}

	var input UpdateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !models.ValidDesign(input.Design) {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown design")
		return
	}

	var template models.MessageTemplate
	if err := config.DB.Where("id = ?", templateID).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	template.Content = input.Content
	template.Design = input.Design
	if err := config.DB.Save(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update template")
		return
	}

	c.JSON(http.StatusOK, template)
}

// DeleteTemplate deletes a template
func DeleteTemplate(c *gin.Context) {
	templateID, ok := parseIDParam(c, "template")
	if !ok {
		return
	}

	result := config.DB.Where("id = ?", templateID).Delete(&models.MessageTemplate{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete template")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
