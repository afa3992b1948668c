// Package repository handles all interactions with the database.
//
// It contains the raw SQL and the methods that fetch or persist rows,
// keeping SQL away from the service layer.
package repository
