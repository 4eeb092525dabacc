package database

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// Open ouvre (ou crée) la base SQLite au chemin donné et vérifie la
// connexion. Le handle est passé explicitement au Loader et aux
// repositories : pas de connexion globale partagée.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Un seul écrivain : pas d'accès concurrent prévu sur le fichier
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// OpenMemory ouvre une base éphémère en mémoire (tests et exercices).
func OpenMemory() (*sql.DB, error) {
	return Open(":memory:")
}
