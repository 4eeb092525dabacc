package testhelpers

import (
	"database/sql"
	"testing"

	"marche/database"
)

// SetupTestDB ouvre une base SQLite éphémère en mémoire avec le schéma
// créé, et enregistre sa fermeture à la fin du test. Chaque test reçoit
// ainsi une instance isolée, sans fichier ni serveur à provisionner.
func SetupTestDB(tb testing.TB) *sql.DB {
	tb.Helper()

	db, err := database.OpenMemory()
	if err != nil {
		tb.Fatalf("ouverture base mémoire: %v", err)
	}
	tb.Cleanup(func() { db.Close() })

	if err := database.CreateTables(db); err != nil {
		tb.Fatalf("création du schéma: %v", err)
	}

	return db
}

// CountRows compte les lignes d'une table du schéma de test.
func CountRows(tb testing.TB, db *sql.DB, table string) int {
	tb.Helper()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
		tb.Fatalf("comptage de %s: %v", table, err)
	}
	return count
}
