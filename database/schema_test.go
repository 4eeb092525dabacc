package database

import (
	"database/sql"
	"testing"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("ouverture base mémoire: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
		t.Fatalf("comptage de %s: %v", table, err)
	}
	return count
}

func TestResetIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	// Reset fonctionne sur une base vierge comme sur un schéma existant
	for i := 0; i < 2; i++ {
		if err := Reset(db); err != nil {
			t.Fatalf("Reset (passe %d): %v", i+1, err)
		}
	}

	if _, err := db.Exec(`INSERT INTO user (user_name) VALUES (?)`, "Alan"); err != nil {
		t.Fatalf("insertion après Reset: %v", err)
	}

	// Un nouveau Reset repart d'un schéma vide
	if err := Reset(db); err != nil {
		t.Fatalf("Reset après insertion: %v", err)
	}
	if got := countRows(t, db, "user"); got != 0 {
		t.Errorf("user: %d lignes après Reset, want 0", got)
	}
}

func TestDuplicateKeySurfacesAsError(t *testing.T) {
	db := openTestDB(t)
	if err := CreateTables(db); err != nil {
		t.Fatal(err)
	}

	if _, err := db.Exec(`INSERT INTO category (categ_name) VALUES (?)`, "pomme"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO category (categ_name) VALUES (?)`, "pomme"); err == nil {
		t.Error("duplicate category silently inserted; want unique constraint error")
	}
}

func TestSeedDemo(t *testing.T) {
	db := openTestDB(t)
	if err := CreateTables(db); err != nil {
		t.Fatal(err)
	}

	if err := SeedDemo(db); err != nil {
		t.Fatalf("SeedDemo: %v", err)
	}

	counts := map[string]int{
		"user": 4, "category": 4, "item": 5, "sale": 9, "review": 1, "basket": 2,
	}
	for table, want := range counts {
		if got := countRows(t, db, table); got != want {
			t.Errorf("table %s: %d lignes, want %d", table, got, want)
		}
	}

	// Les noms d'articles contiennent accents et parenthèses : la valeur
	// doit traverser intacte les paramètres liés
	var name string
	err := db.QueryRow(`SELECT item_name FROM item WHERE categ_name = ?`, "dessert").Scan(&name)
	if err != nil {
		t.Fatal(err)
	}
	if name != "poire belle hélène (dessert)" {
		t.Errorf("item name mangled: %q", name)
	}
}
