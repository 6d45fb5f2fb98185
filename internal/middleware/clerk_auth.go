package middleware

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkjwt "github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/clerk/clerk-sdk-go/v2/user"
	"github.com/gin-gonic/gin"
	"github.com/maxiwise/MF_Api.git/internal/models"
	"github.com/maxiwise/MF_Api.git/internal/repository"
	svix "github.com/svix/svix-webhooks/go"
)

var userClient *user.Client

// InitClerk initializes the Clerk client. Without a secret key every
// Clerk-backed feature degrades to unavailable instead of crashing.
func InitClerk() {
	secretKey := os.Getenv("CLERK_SECRET_KEY")
	if secretKey == "" {
		log.Printf("WARNING: CLERK_SECRET_KEY environment variable is not set. Clerk features will be disabled.")
		return
	}

	clerk.SetKey(secretKey)

	config := &clerk.ClientConfig{}
	config.Key = &secretKey
	userClient = user.NewClient(config)

	log.Printf("Clerk initialized successfully")
}

// ClerkAuthMiddleware validates Clerk session tokens.
func ClerkAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userClient == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Clerk authentication not available"})
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token not provided"})
			c.Abort()
			return
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)

		claims, err := clerkjwt.Verify(c.Request.Context(), &clerkjwt.VerifyParams{
			Token: tokenString,
		})
		if err != nil {
			log.Printf("JWT verification failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		userID := claims.Subject
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token: missing subject"})
			c.Abort()
			return
		}

		c.Set("userId", userID)
		c.Set("clerkClaims", claims)
		c.Next()
	}
}

// GetUserFromClerk returns the Clerk profile for the authenticated user.
func GetUserFromClerk(c *gin.Context) {
	if userClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Clerk authentication not available"})
		return
	}

	userID := c.GetString("userId")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User id not found"})
		return
	}

	u, err := userClient.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching user information"})
		return
	}

	var email string
	if len(u.EmailAddresses) > 0 {
		email = u.EmailAddresses[0].EmailAddress
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":         u.ID,
			"email":      email,
			"first_name": u.FirstName,
			"last_name":  u.LastName,
			"created_at": u.CreatedAt,
			"updated_at": u.UpdatedAt,
		},
	})
}

// ClerkWebhookHandler handles Clerk user events, verified with Svix.
func ClerkWebhookHandler(c *gin.Context) {
	webhookSecret := os.Getenv("CLERK_WEBHOOK_SECRET")
	if webhookSecret == "" {
		log.Printf("ERROR: CLERK_WEBHOOK_SECRET environment variable is not set")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("ERROR: reading request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read request body"})
		return
	}

	wh, err := svix.NewWebhook(webhookSecret)
	if err != nil {
		log.Printf("ERROR: creating Svix webhook: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize webhook verification"})
		return
	}

	if err := wh.Verify(body, c.Request.Header); err != nil {
		log.Printf("ERROR: Svix webhook verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook signature"})
		return
	}

	var webhookData map[string]interface{}
	if err := json.Unmarshal(body, &webhookData); err != nil {
		log.Printf("ERROR: parsing JSON payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload"})
		return
	}

	eventType, ok := webhookData["type"].(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing event type"})
		return
	}

	log.Printf("Processing webhook event: %s", eventType)

	switch eventType {
	case "user.created":
		handleUserCreated(c, webhookData)
	case "user.updated":
		handleUserUpdated(c, webhookData)
	case "user.deleted":
		handleUserDeleted(c, webhookData)
	default:
		log.Printf("Event type %s not handled", eventType)
		c.JSON(http.StatusOK, gin.H{"message": "Event received but not handled"})
	}
}

// extractUserFields pulls the id, primary email and full name out of a
// Clerk user payload.
func extractUserFields(data map[string]interface{}) (id, email, name string, ok bool) {
	id, ok = data["id"].(string)
	if !ok {
		return "", "", "", false
	}

	emailAddresses, ok := data["email_addresses"].([]interface{})
	if !ok || len(emailAddresses) == 0 {
		return "", "", "", false
	}
	for _, emailAddr := range emailAddresses {
		if emailMap, ok := emailAddr.(map[string]interface{}); ok {
			if emailMap["email_address"] != nil {
				email = emailMap["email_address"].(string)
				break
			}
		}
	}
	if email == "" {
		return "", "", "", false
	}

	firstName, _ := data["first_name"].(string)
	lastName, _ := data["last_name"].(string)
	name = strings.TrimSpace(firstName + " " + lastName)
	if name == "" {
		name = strings.Split(email, "@")[0]
	}
	return id, email, name, true
}

// handleUserCreated mirrors a Clerk signup into the users table.
func handleUserCreated(c *gin.Context, webhookData map[string]interface{}) {
	data, ok := webhookData["data"].(map[string]interface{})
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook data structure"})
		return
	}

	userID, email, name, ok := extractUserFields(data)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user id or email"})
		return
	}

	repo := repository.NewUserRepository()
	u := &models.User{
		ID:        userID,
		Email:     email,
		Name:      name,
		Password:  "", // Clerk users have no local password
		CreatedAt: time.Now(),
	}

	if err := repo.CreateUser(u); err != nil {
		log.Printf("ERROR: creating user in database: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	log.Printf("User created: ID=%s, Email=%s", userID, email)
	c.JSON(http.StatusOK, gin.H{"message": "User created successfully"})
}

// handleUserUpdated refreshes the mirrored profile.
func handleUserUpdated(c *gin.Context, webhookData map[string]interface{}) {
	data, ok := webhookData["data"].(map[string]interface{})
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook data structure"})
		return
	}

	userID, email, name, ok := extractUserFields(data)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user id or email"})
		return
	}

	repo := repository.NewUserRepository()
	u := &models.User{
		ID:    userID,
		Email: email,
		Name:  name,
	}

	if err := repo.UpdateUser(u); err != nil {
		log.Printf("Error updating user in database: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	log.Printf("User updated: ID=%s, Email=%s", userID, email)
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

// handleUserDeleted removes the mirrored row; watchlists cascade.
func handleUserDeleted(c *gin.Context, webhookData map[string]interface{}) {
	data, ok := webhookData["data"].(map[string]interface{})
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook data structure"})
		return
	}

	userID, ok := data["id"].(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user ID"})
		return
	}

	repo := repository.NewUserRepository()
	if err := repo.DeleteUser(userID); err != nil {
		log.Printf("Error deleting user from database: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	log.Printf("User deleted: ID=%s", userID)
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
