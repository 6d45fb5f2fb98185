package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxiwise/MF_Api.git/internal/models"
	"github.com/maxiwise/MF_Api.git/internal/services"
)

func GetUsers(c *gin.Context) {
	users, err := userRepo.GetAllUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
	})
}

func GetUser(c *gin.Context) {
	userId := c.Param("id")

	user, err := userRepo.GetUserById(userId)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

func GetUserByEmail(c *gin.Context) {
	email := c.Param("email")

	user, err := userRepo.GetUserByEmail(email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

// RefreshFundData drops the feed cache and re-imports the scheme list,
// so freshly listed funds show up without waiting for the next NAV
// refresh cycle.
func RefreshFundData(c *gin.Context) {
	services.InvalidateFeedCache()

	feedFunds, err := services.GetSchemesFromFeed()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error fetching scheme list from feed"})
		return
	}

	imported := 0
	for _, f := range feedFunds {
		scheme := models.FundScheme{
			ID:          f.SchemeCode,
			ISIN:        f.ISIN,
			SchemeName:  f.SchemeName,
			AMC:         f.AMC,
			Category:    f.Category,
			Rating:      f.Rating,
			Nav:         f.Nav.Value,
			NavDate:     f.Nav.Date,
		}
		if err := fundRepo.UpsertScheme(scheme); err != nil {
			log.Printf("Error importing scheme %s: %v", f.ISIN, err)
			continue
		}
		imported++
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Fund data refreshed",
		"imported": imported,
		"total":    len(feedFunds),
	})
}
