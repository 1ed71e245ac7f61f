package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

// Statement text for the hot paths: auth lookups and the catalog reads
// that back every cart mutation. gocql prepares a statement once per node
// and reuses the prepared form for every Query built from the same text.
const (
	stmtGetUserByEmail = "SELECT user_id FROM users_by_email WHERE email = ?"

	stmtGetUserByID = `SELECT email, password, name, phone, role, provider, created_at
		FROM users WHERE user_id = ?`

	stmtInsertUser = `INSERT INTO users (user_id, email, password, name, phone, role, provider, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	stmtInsertUserByEmail = "INSERT INTO users_by_email (email, user_id) VALUES (?, ?)"

	stmtGetBookByID = `SELECT book_id, name, description, author, price, stock, image_urls, english, urdu, is_active, created_at, updated_at
		FROM books WHERE book_id = ?`
)

var (
	stmtUsersSession *gocql.Session
	stmtBooksSession *gocql.Session

	preparedOnce sync.Once
)

func InitPreparedStatements() {
	preparedOnce.Do(func() {
		users, err := GetUsersSession()
		if err != nil {
			log.Printf("⚠️ Could not initialize prepared statements: %v", err)
			return
		}
		stmtUsersSession = users

		books, err := GetBooksSession()
		if err != nil {
			log.Printf("⚠️ Could not prepare book statements: %v", err)
			return
		}
		stmtBooksSession = books

		log.Println("✅ Prepared statements initialized")
	})
}

// Each getter hands out a fresh Query: Bind mutates the Query in place,
// so a shared instance is unsafe across concurrent requests.

func GetPreparedGetUserByEmail() *gocql.Query {
	return stmtUsersSession.Query(stmtGetUserByEmail)
}

func GetPreparedGetUserByID() *gocql.Query {
	return stmtUsersSession.Query(stmtGetUserByID)
}

func GetPreparedInsertUser() *gocql.Query {
	return stmtUsersSession.Query(stmtInsertUser)
}

func GetPreparedInsertUserByEmail() *gocql.Query {
	return stmtUsersSession.Query(stmtInsertUserByEmail)
}

func GetPreparedGetBookByID() *gocql.Query {
	return stmtBooksSession.Query(stmtGetBookByID)
}
