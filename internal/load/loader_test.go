package load

import (
	"strings"
	"testing"

	"marche/database"
	"marche/internal/normalize"
	"marche/internal/testhelpers"
)

func price(v float64) *float64 { return &v }
func qty(v int) *int           { return &v }

func sampleDataset() *normalize.Dataset {
	return &normalize.Dataset{
		Users:      []database.User{{Name: "Alan"}, {Name: "Danielle"}},
		Categories: []database.Category{{Name: "pomme"}},
		Items: []database.Item{
			{Name: "golden (pomme)", Category: "pomme"},
			{Name: "granny smith (pomme)", Category: "pomme"},
		},
		Sales: []database.Sale{
			{Seller: "Danielle", Item: "golden (pomme)", Price: price(0.89)},
		},
		Orders: []database.Order{
			{Buyer: "Alan", Datetime: "1993-10-23 17:25:40"},
		},
		OrderItems: []database.OrderItem{
			{Datetime: "1993-10-23 17:25:40", Seller: "Danielle", Item: "golden (pomme)", Quantity: qty(2)},
		},
		Baskets: []database.BasketLine{
			{Buyer: "Alan", Seller: "Danielle", Item: "granny smith (pomme)", Quantity: qty(1)},
		},
		Reviews: []database.Review{
			{User: "Alan", Item: "golden (pomme)", Seller: "Danielle", Rating: 5, Comments: "parfait"},
		},
	}
}

func TestLoadInsertsAllBatches(t *testing.T) {
	db := testhelpers.SetupTestDB(t)

	if err := NewLoader(db).Load(sampleDataset()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	counts := map[string]int{
		"user": 2, "category": 1, "item": 2, "sale": 1,
		"orderlist": 1, "orderitem": 1, "basket": 1, "review": 1,
	}
	for table, want := range counts {
		if got := testhelpers.CountRows(t, db, table); got != want {
			t.Errorf("table %s: %d rows, want %d", table, got, want)
		}
	}
}

// L'intégrité référentielle tient après chargement : chaque vente pointe
// un utilisateur et un article existants, chaque ligne de commande une
// datetime de commande existante.
func TestLoadPreservesReferentialIntegrity(t *testing.T) {
	db := testhelpers.SetupTestDB(t)

	if err := NewLoader(db).Load(sampleDataset()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	checks := map[string]string{
		"sale.seller sans user": `
			SELECT COUNT(*) FROM sale
			WHERE seller NOT IN (SELECT user_name FROM user)`,
		"sale.item sans item": `
			SELECT COUNT(*) FROM sale
			WHERE item_name NOT IN (SELECT item_name FROM item)`,
		"orderitem.datetime sans orderlist": `
			SELECT COUNT(*) FROM orderitem
			WHERE datetime NOT IN (SELECT datetime FROM orderlist)`,
	}
	for name, query := range checks {
		var orphans int
		if err := db.QueryRow(query).Scan(&orphans); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if orphans != 0 {
			t.Errorf("%s: %d lignes orphelines", name, orphans)
		}
	}
}

// Un doublon de clé qui atteint le Loader est un défaut : le lot échoue en
// bloc et aucun lot dépendant n'est tenté.
func TestLoadDuplicateKeyFailsBatchAtomically(t *testing.T) {
	db := testhelpers.SetupTestDB(t)

	ds := sampleDataset()
	ds.Users = append(ds.Users, database.User{Name: "Alan"})

	err := NewLoader(db).Load(ds)
	if err == nil {
		t.Fatal("expected duplicate key error, got nil")
	}
	if !strings.Contains(err.Error(), "user") {
		t.Errorf("error should name the failing batch: %v", err)
	}

	// Tout-ou-rien : le premier Alan ne survit pas à l'échec du lot
	if got := testhelpers.CountRows(t, db, "user"); got != 0 {
		t.Errorf("user batch partially committed: %d rows", got)
	}
	// Les lots suivants n'ont pas été tentés
	for _, table := range []string{"category", "item", "sale", "orderlist"} {
		if got := testhelpers.CountRows(t, db, table); got != 0 {
			t.Errorf("dependent batch %s ran after a failed prerequisite: %d rows", table, got)
		}
	}
}

func TestLoadEmptyDataset(t *testing.T) {
	db := testhelpers.SetupTestDB(t)

	if err := NewLoader(db).Load(&normalize.Dataset{}); err != nil {
		t.Fatalf("Load on empty dataset: %v", err)
	}
	if got := testhelpers.CountRows(t, db, "user"); got != 0 {
		t.Errorf("unexpected rows: %d", got)
	}
}
