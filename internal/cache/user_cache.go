package cache

import (
	"encoding/json"
	"time"

	"maktaba_back_end/internal/database"
	"maktaba_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

const UserCacheTTL = 5 * time.Minute

// GetUserFromCache returns a user from Redis, falling through to ScyllaDB
// and re-priming the cache on a miss.
func GetUserFromCache(userID string) (*models.User, error) {
	key := "user:" + userID

	// 1. Try Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var user models.User
		if json.Unmarshal([]byte(data), &user) == nil {
			return &user, nil
		}
	}

	// 2. Fall through to ScyllaDB
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}

	var (
		email, name, phone, role, provider string
		createdAt                          time.Time
	)
	err = session.Query(`SELECT email, name, phone, role, provider, created_at
		FROM users WHERE user_id = ?`, gocql.UUID(uid)).Scan(
		&email, &name, &phone, &role, &provider, &createdAt)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        userID,
		Email:     email,
		Name:      name,
		Phone:     phone,
		Role:      role,
		Provider:  provider,
		CreatedAt: createdAt,
	}

	// 3. Prime the cache
	jsonData, _ := json.Marshal(user)
	database.Redis.Set(ctx, key, jsonData, UserCacheTTL)

	return user, nil
}

// InvalidateUserCache drops a user's cached snapshot.
func InvalidateUserCache(userID string) {
	database.Redis.Del(ctx, "user:"+userID)
}
