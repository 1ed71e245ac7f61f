package user

import (
	"net/http"

	"maktaba_back_end/internal/database"
	"maktaba_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ================== ADDRESS BOOK ==================

// ListAddresses returns the account's saved addresses, default first.
func ListAddresses(c *gin.Context) {
	userID := c.GetString("user_id")

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	iter := session.Query(`SELECT address_id, line1, line2, landmark, city, state, pincode, type, is_default
		FROM addresses WHERE user_id = ?`, userID).Iter()

	var addresses []models.Address
	var a models.Address
	for iter.Scan(&a.ID, &a.Line1, &a.Line2, &a.Landmark, &a.City, &a.State, &a.Pincode, &a.Type, &a.IsDefault) {
		a.UserID = userID
		addresses = append(addresses, a)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Address read error"})
		return
	}

	// default first, stable otherwise
	for i, addr := range addresses {
		if addr.IsDefault && i > 0 {
			addresses = append([]models.Address{addr}, append(addresses[:i], addresses[i+1:]...)...)
			break
		}
	}

	if addresses == nil {
		addresses = []models.Address{}
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

// CreateAddress saves a new address. The first address for an account
// becomes the default automatically.
func CreateAddress(c *gin.Context) {
	userID := c.GetString("user_id")

	var input models.Address
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	var count int
	if err := session.Query("SELECT COUNT(*) FROM addresses WHERE user_id = ?", userID).Scan(&count); err == nil && count == 0 {
		input.IsDefault = true
	}

	input.ID = gocql.UUID(uuid.New())
	input.UserID = userID

	if input.IsDefault {
		clearDefaultAddress(session, userID)
	}

	if err := session.Query(`INSERT INTO addresses (user_id, address_id, line1, line2, landmark, city, state, pincode, type, is_default)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, input.ID, input.Line1, input.Line2, input.Landmark, input.City,
		input.State, input.Pincode, input.Type, input.IsDefault).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Address save error"})
		return
	}

	c.JSON(http.StatusCreated, input)
}

// UpdateAddress edits an existing address.
func UpdateAddress(c *gin.Context) {
	userID := c.GetString("user_id")

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
		return
	}

	var input models.Address
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	var existing gocql.UUID
	if err := session.Query("SELECT address_id FROM addresses WHERE user_id = ? AND address_id = ?",
		userID, gocql.UUID(addressID)).Scan(&existing); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	if input.IsDefault {
		clearDefaultAddress(session, userID)
	}

	if err := session.Query(`UPDATE addresses SET line1 = ?, line2 = ?, landmark = ?, city = ?, state = ?, pincode = ?, type = ?, is_default = ?
		WHERE user_id = ? AND address_id = ?`,
		input.Line1, input.Line2, input.Landmark, input.City, input.State,
		input.Pincode, input.Type, input.IsDefault, userID, gocql.UUID(addressID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Address save error"})
		return
	}

	input.ID = gocql.UUID(addressID)
	input.UserID = userID
	c.JSON(http.StatusOK, input)
}

// SetDefaultAddress flips the default flag to the named address.
// At most one address per account holds the flag.
func SetDefaultAddress(c *gin.Context) {
	userID := c.GetString("user_id")

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	var existing gocql.UUID
	if err := session.Query("SELECT address_id FROM addresses WHERE user_id = ? AND address_id = ?",
		userID, gocql.UUID(addressID)).Scan(&existing); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	clearDefaultAddress(session, userID)
	if err := session.Query("UPDATE addresses SET is_default = true WHERE user_id = ? AND address_id = ?",
		userID, gocql.UUID(addressID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Address save error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Default address updated"})
}

// DeleteAddress removes an address from the book.
func DeleteAddress(c *gin.Context) {
	userID := c.GetString("user_id")

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	if err := session.Query("DELETE FROM addresses WHERE user_id = ? AND address_id = ?",
		userID, gocql.UUID(addressID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Address delete error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}

func clearDefaultAddress(session *gocql.Session, userID string) {
	iter := session.Query("SELECT address_id, is_default FROM addresses WHERE user_id = ?", userID).Iter()
	var id gocql.UUID
	var isDefault bool
	for iter.Scan(&id, &isDefault) {
		if isDefault {
			session.Query("UPDATE addresses SET is_default = false WHERE user_id = ? AND address_id = ?",
				userID, id).Exec()
		}
	}
	iter.Close()
}
