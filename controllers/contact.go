package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"celebrato-backend/config"
	"celebrato-backend/models"
	"celebrato-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ContactInput is shared by create and update; dates are YYYY-MM-DD or empty.
type ContactInput struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Birthday    string `json:"birthday"`
	Anniversary string `json:"anniversary"`
}

func (in ContactInput) apply(contact *models.Contact) (string, bool) {
	if !utils.ValidatePhone(in.PhoneNumber) {
		return "Invalid phone number format", false
	}
	birthday, err := utils.ParseOptionalDate(in.Birthday)
	if err != nil {
		return "Invalid birthday, expected YYYY-MM-DD", false
	}
	anniversary, err := utils.ParseOptionalDate(in.Anniversary)
	if err != nil {
		return "Invalid anniversary, expected YYYY-MM-DD", false
	}
	if birthday != nil && birthday.After(time.Now()) {
		return "Birthday cannot be in the future", false
	}

	contact.Name = strings.TrimSpace(in.Name)
	contact.Phone = utils.NormalizePhone(in.PhoneNumber)
	contact.Birthday = birthday
	contact.Anniversary = anniversary
	return "", true
}

// CreateContact creates a new contact for the current user
func CreateContact(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	contact := models.Contact{UserID: userID}
	if msg, ok := input.apply(&contact); !ok {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	if err := config.DB.Create(&contact).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create contact")
		return
	}

	c.JSON(http.StatusCreated, contact)
}

// GetContacts lists the current user's contacts
func GetContacts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var contacts []models.Contact
	if err := config.DB.Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&contacts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve contacts")
		return
	}

	c.JSON(http.StatusOK, contacts)
}

// GetContact retrieves a specific contact by ID
func GetContact(c *gin.Context) {
	contact, ok := findOwnedContact(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, contact)
}

// UpdateContact replaces the fields of an existing contact
func UpdateContact(c *gin.Context) {
	contact, ok := findOwnedContact(c)
	if !ok {
		return
	}

	var input ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if msg, ok := input.apply(&contact); !ok {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	if err := config.DB.Save(&contact).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update contact")
		return
	}

	c.JSON(http.StatusOK, contact)
}

// DeleteContact soft deletes a contact
func DeleteContact(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	contactID, ok := parseIDParam(c, "contact")
	if !ok {
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userID, contactID).
		Delete(&models.Contact{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete contact")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Contact not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func findOwnedContact(c *gin.Context) (models.Contact, bool) {
	var contact models.Contact
	userID, ok := currentUserID(c)
	if !ok {
		return contact, false
	}
	contactID, ok := parseIDParam(c, "contact")
	if !ok {
		return contact, false
	}

	if err := config.DB.Where("user_id = ? AND id = ?", userID, contactID).
		First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Contact not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return contact, false
	}
	return contact, true
}
