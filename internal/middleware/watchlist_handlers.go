package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxiwise/MF_Api.git/internal/database"
	"github.com/maxiwise/MF_Api.git/internal/models"
	"github.com/maxiwise/MF_Api.git/internal/repository"
)

var watchlistRepo *repository.WatchlistRepository

// InitWatchlist initializes the watchlist repository.
func InitWatchlist() {
	watchlistRepo = repository.NewWatchlistRepository(database.DB)
}

// CreateWatchlistGroup creates a new group for the signed-in user.
func CreateWatchlistGroup(c *gin.Context) {
	userID := c.GetString("userId")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var group models.WatchlistGroup
	if err := c.ShouldBindJSON(&group); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group.UserID = userID

	if err := watchlistRepo.CreateGroup(&group); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating watchlist group: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Watchlist group created", "group": group})
}

// GetWatchlistGroups lists the user's groups.
func GetWatchlistGroups(c *gin.Context) {
	userID := c.GetString("userId")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	groups, err := watchlistRepo.GetGroupsByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching watchlist groups: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// GetWatchlistGroupDetails loads one group with items and alert rules.
func GetWatchlistGroupDetails(c *gin.Context) {
	userID := c.GetString("userId")
	groupID := c.Param("id")

	group, err := watchlistRepo.GetGroupByID(groupID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Watchlist group not found"})
		return
	}
	if group.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your watchlist group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"group": group})
}

// DeleteWatchlistGroup removes a group and everything in it.
func DeleteWatchlistGroup(c *gin.Context) {
	userID := c.GetString("userId")
	groupID := c.Param("id")

	if err := watchlistRepo.DeleteGroup(groupID, userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Watchlist group not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Watchlist group deleted"})
}

// AddWatchlistItem adds a fund to a group, capturing the NAV at add
// time so the UI can show change since added.
func AddWatchlistItem(c *gin.Context) {
	userID := c.GetString("userId")
	groupID := c.Param("id")

	group, err := watchlistRepo.GetGroupByID(groupID)
	if err != nil || group.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Watchlist group not found"})
		return
	}

	var item models.WatchlistItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item.GroupID = groupID

	// fill in what we know about the fund
	if scheme, err := fundRepo.GetSchemeByISIN(item.ISIN); err == nil {
		item.FundID = scheme.ID
		item.SchemeName = scheme.SchemeName
		item.AddedNav = scheme.Nav
	}

	if err := watchlistRepo.AddItem(&item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding fund to watchlist: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Fund added to watchlist", "item": item})
}

// RemoveWatchlistItem drops a fund from a group.
func RemoveWatchlistItem(c *gin.Context) {
	userID := c.GetString("userId")
	groupID := c.Param("id")
	isin := c.Param("isin")

	group, err := watchlistRepo.GetGroupByID(groupID)
	if err != nil || group.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Watchlist group not found"})
		return
	}

	if err := watchlistRepo.RemoveItem(groupID, isin); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing fund: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fund removed from watchlist"})
}

// CreateAlertRule arms a NAV alert on a group.
func CreateAlertRule(c *gin.Context) {
	userID := c.GetString("userId")
	groupID := c.Param("id")

	group, err := watchlistRepo.GetGroupByID(groupID)
	if err != nil || group.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Watchlist group not found"})
		return
	}

	var rule models.NavAlertRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule.GroupID = groupID

	if err := watchlistRepo.CreateRule(&rule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error creating alert rule: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Alert rule created", "rule": rule})
}

// DeleteAlertRule disarms and removes a rule.
func DeleteAlertRule(c *gin.Context) {
	userID := c.GetString("userId")
	groupID := c.Param("id")
	ruleID := c.Param("ruleId")

	group, err := watchlistRepo.GetGroupByID(groupID)
	if err != nil || group.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Watchlist group not found"})
		return
	}

	if err := watchlistRepo.DeleteRule(ruleID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting alert rule: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Alert rule deleted"})
}
