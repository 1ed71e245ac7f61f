package database

import (
	"testing"

	"github.com/gocql/gocql"
)

func TestPreparedGettersReturnFreshQueries(t *testing.T) {
	// Bind mutates a Query in place, so two requests must never receive
	// the same instance.
	stmtUsersSession = &gocql.Session{}
	stmtBooksSession = &gocql.Session{}

	if GetPreparedGetUserByEmail() == GetPreparedGetUserByEmail() {
		t.Error("user-by-email queries are shared between callers")
	}
	if GetPreparedGetUserByID() == GetPreparedGetUserByID() {
		t.Error("user-by-id queries are shared between callers")
	}
	if GetPreparedGetBookByID() == GetPreparedGetBookByID() {
		t.Error("book-by-id queries are shared between callers")
	}
}
