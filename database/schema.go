package database

import (
	"database/sql"
	"fmt"
)

// tableNames dans l'ordre de création ; le drop se fait en ordre inverse.
var tableNames = []string{
	"user", "category", "item", "sale", "orderlist", "orderitem", "basket", "review",
}

// createStatements déclare les huit tables du schéma normalisé. Les clauses
// FOREIGN KEY sont documentaires : l'application (PRAGMA foreign_keys par
// défaut à OFF) garantit la cohérence par l'ordre d'insertion du Loader.
var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS user (
		user_name TEXT PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS category (
		categ_name TEXT PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS item (
		item_name  TEXT PRIMARY KEY,
		categ_name TEXT NOT NULL,
		FOREIGN KEY(categ_name) REFERENCES category(categ_name)
	)`,
	`CREATE TABLE IF NOT EXISTS sale (
		seller    TEXT NOT NULL,
		item_name TEXT NOT NULL,
		price     REAL,
		FOREIGN KEY(seller)    REFERENCES user(user_name),
		FOREIGN KEY(item_name) REFERENCES item(item_name)
	)`,
	`CREATE TABLE IF NOT EXISTS orderlist (
		order_id INTEGER PRIMARY KEY AUTOINCREMENT,
		buyer    TEXT NOT NULL,
		datetime TEXT NOT NULL,
		FOREIGN KEY(buyer) REFERENCES user(user_name)
	)`,
	`CREATE TABLE IF NOT EXISTS orderitem (
		datetime  TEXT NOT NULL,
		seller    TEXT,
		item_name TEXT,
		quantity  INTEGER,
		FOREIGN KEY(datetime)  REFERENCES orderlist(datetime),
		FOREIGN KEY(item_name) REFERENCES item(item_name)
	)`,
	`CREATE TABLE IF NOT EXISTS basket (
		buyer     TEXT,
		seller    TEXT,
		item_name TEXT,
		quantity  INTEGER,
		FOREIGN KEY(seller)    REFERENCES sale(seller),
		FOREIGN KEY(item_name) REFERENCES sale(item_name)
	)`,
	`CREATE TABLE IF NOT EXISTS review (
		user_name TEXT,
		item_name TEXT,
		seller    TEXT,
		rating    INTEGER,
		comments  TEXT,
		FOREIGN KEY(user_name) REFERENCES user(user_name),
		FOREIGN KEY(seller)    REFERENCES sale(seller),
		FOREIGN KEY(item_name) REFERENCES item(item_name)
	)`,
}

// CreateTables crée les tables manquantes du schéma.
func CreateTables(db *sql.DB) error {
	for i, stmt := range createStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("création table %s: %w", tableNames[i], err)
		}
	}
	return nil
}

// DropTables supprime toutes les tables du schéma si elles existent.
func DropTables(db *sql.DB) error {
	for i := len(tableNames) - 1; i >= 0; i-- {
		if _, err := db.Exec(`DROP TABLE IF EXISTS ` + tableNames[i]); err != nil {
			return fmt.Errorf("suppression table %s: %w", tableNames[i], err)
		}
	}
	return nil
}

// Reset remet le schéma à vide : drop puis create, idempotent. À appeler
// avant chaque chargement, le Loader ne supportant pas la reprise sur un
// schéma déjà peuplé.
func Reset(db *sql.DB) error {
	if err := DropTables(db); err != nil {
		return err
	}
	return CreateTables(db)
}
