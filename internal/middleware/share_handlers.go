package middleware

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ShareFund issues a signed link for a fund page. The token carries the
// fund id only; resolving it needs no login, creating it does.
func ShareFund(c *gin.Context) {
	id := c.Param("id")

	scheme, err := fundRepo.GetSchemeByID(id)
	if err != nil {
		scheme, err = fundRepo.GetSchemeByISIN(id)
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fund not found"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"fundId": scheme.ID,
		"exp":    time.Now().Add(7 * 24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating share link"})
		return
	}

	trackPageView(c, "fund_shared", map[string]interface{}{"isin": scheme.ISIN})

	c.JSON(http.StatusOK, gin.H{
		"message":         "Share link created",
		"share_url":       fmt.Sprintf("%s/shared/%s", publicBaseURL(), signed),
		"expires_in_days": 7,
	})
}

// ResolveSharedFund turns a share token back into the fund's chart
// payload. No login required; the link itself is the credential.
func ResolveSharedFund(c *gin.Context) {
	tokenString := c.Param("token")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired share link"})
		return
	}

	claims := token.Claims.(jwt.MapClaims)
	fundID, _ := claims["fundId"].(string)
	if fundID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid share link"})
		return
	}

	c.Params = append(c.Params, gin.Param{Key: "id", Value: fundID})
	GetChartData(c)
}

// DownloadNavHistory serves a fund's stored NAV history as a CSV
// attachment.
func DownloadNavHistory(c *gin.Context) {
	id := c.Param("id")

	scheme, err := fundRepo.GetSchemeByID(id)
	if err != nil {
		scheme, err = fundRepo.GetSchemeByISIN(id)
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fund not found"})
		return
	}

	history, err := fundRepo.GetNavHistory(scheme.ID, 365)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading NAV history"})
		return
	}

	csv := "date,nav\n"
	for _, snap := range history {
		csv += fmt.Sprintf("%s,%.4f\n", snap.Date.Format("2006-01-02"), snap.Nav)
	}

	trackPageView(c, "nav_history_downloaded", map[string]interface{}{"isin": scheme.ISIN})

	filename := fmt.Sprintf("%s_nav_history.csv", scheme.ISIN)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv", []byte(csv))
}

func publicBaseURL() string {
	if base := os.Getenv("PUBLIC_BASE_URL"); base != "" {
		return base
	}
	return "https://maxiwise.com"
}
