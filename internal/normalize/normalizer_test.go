package normalize

import (
	"reflect"
	"testing"

	"marche/internal/ingest"
)

func activityRecord(buyer, item, seller, price, quantity, datetime string) ingest.Record {
	return ingest.Record{
		Buyer: buyer, Item: item, Seller: seller,
		Price: price, Quantity: quantity, Timestamp: datetime,
	}
}

// Une transaction validée ne produit jamais de ligne de panier, et une
// sélection en cours ne produit ni commande ni ligne de commande.
func TestOrderAndBasketAreDisjoint(t *testing.T) {
	n := NewNormalizer()

	committed := []ingest.Record{
		activityRecord("Alan", "golden (pomme)", "Danielle", "0.89", "2", "1993-10-23 17:25:40"),
	}
	ds := n.Build(committed, ingest.Catalogue{})
	if len(ds.Baskets) != 0 {
		t.Errorf("committed record produced %d basket lines", len(ds.Baskets))
	}
	if len(ds.Orders) != 1 || len(ds.OrderItems) != 1 {
		t.Errorf("committed record: got %d orders, %d order items", len(ds.Orders), len(ds.OrderItems))
	}

	pending := []ingest.Record{
		activityRecord("Alan", "golden (pomme)", "Danielle", "0.89", "2", ""),
	}
	ds = n.Build(pending, ingest.Catalogue{})
	if len(ds.Orders) != 0 || len(ds.OrderItems) != 0 {
		t.Errorf("pending record: got %d orders, %d order items", len(ds.Orders), len(ds.OrderItems))
	}
	if len(ds.Baskets) != 1 {
		t.Errorf("pending record produced %d basket lines, want 1", len(ds.Baskets))
	}
}

// Normaliser deux fois le même lot ne fait survivre aucun doublon.
func TestDeduplicationIsIdempotent(t *testing.T) {
	n := NewNormalizer()

	batch := []ingest.Record{
		activityRecord("Alan", "golden (pomme)", "Danielle", "0.89", "2", "1993-10-23 17:25:40"),
		activityRecord("Erwan", "radis (légume)", "Hélène", "", "3", ""),
	}
	cat := ingest.Catalogue{
		Categories: []string{"pomme", "légume"},
		Rows:       [][]string{{"golden", "radis"}},
	}

	once := n.Build(batch, cat)
	twice := n.Build(append(append([]ingest.Record{}, batch...), batch...), cat)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalizing a doubled batch differs from normalizing it once:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

// Deux cellules de même nom nu dans deux catégories différentes donnent
// deux articles distincts, qualifiés par leur catégorie.
func TestItemIdentityIsCategoryQualified(t *testing.T) {
	n := NewNormalizer()

	cat := ingest.Catalogue{
		Categories: []string{"pomme", "jeu"},
		Rows:       [][]string{{"golden", "golden"}},
	}
	ds := n.Build(nil, cat)

	if len(ds.Items) != 2 {
		t.Fatalf("expected 2 distinct items, got %d: %+v", len(ds.Items), ds.Items)
	}
	if ds.Items[0].Name != "golden (pomme)" || ds.Items[1].Name != "golden (jeu)" {
		t.Errorf("unexpected qualified names: %+v", ds.Items)
	}
}

// Les utilisateurs ne naissent que des transactions validées.
func TestUsersOnlyFromCommittedRecords(t *testing.T) {
	n := NewNormalizer()

	records := []ingest.Record{
		activityRecord("Alan", "granny smith (pomme)", "Danielle", "0.6", "1", ""),
		activityRecord("Vera", "radis (légume)", "Danielle", "", "2", "1993-10-23 17:25:40"),
	}
	ds := n.Build(records, ingest.Catalogue{})

	want := []string{"Vera", "Danielle"}
	var got []string
	for _, u := range ds.Users {
		got = append(got, u.Name)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("users = %q; want %q (Alan n'apparaît sur aucune transaction validée)", got, want)
	}
}

// Scénario de bout en bout : une seule ligne de panier (datetime, note et
// commentaire absents).
func TestSingleBasketRowScenario(t *testing.T) {
	n := NewNormalizer()

	records := ingest.ParseUserLog([]string{
		"header",
		"Alan\tgranny smith (pomme)\tDanielle\t0.6\t1\t\t\t",
	})
	ds := n.Build(records, ingest.Catalogue{})

	if len(ds.Users) != 0 {
		t.Errorf("got %d users, want 0 (aucune transaction validée)", len(ds.Users))
	}
	if len(ds.Sales) != 1 {
		t.Fatalf("got %d sales, want 1", len(ds.Sales))
	}
	s := ds.Sales[0]
	if s.Seller != "Danielle" || s.Item != "granny smith (pomme)" || s.Price == nil || *s.Price != 0.6 {
		t.Errorf("unexpected sale: %+v", s)
	}
	if len(ds.Baskets) != 1 {
		t.Fatalf("got %d basket lines, want 1", len(ds.Baskets))
	}
	b := ds.Baskets[0]
	if b.Buyer != "Alan" || b.Seller != "Danielle" || b.Quantity == nil || *b.Quantity != 1 {
		t.Errorf("unexpected basket line: %+v", b)
	}
	if len(ds.Orders) != 0 || len(ds.Reviews) != 0 {
		t.Errorf("got %d orders and %d reviews, want none", len(ds.Orders), len(ds.Reviews))
	}
}

// Une transaction validée sans acheteur garde son en-tête de commande :
// chaque ligne de commande doit trouver une datetime dans orderlist.
func TestOrderEmittedForCommittedRecordWithoutBuyer(t *testing.T) {
	n := NewNormalizer()

	records := []ingest.Record{
		activityRecord("", "golden (pomme)", "Danielle", "", "2", "1993-10-23 17:25:40"),
	}
	ds := n.Build(records, ingest.Catalogue{})

	if len(ds.Orders) != 1 {
		t.Fatalf("got %d orders, want 1", len(ds.Orders))
	}
	if ds.Orders[0].Buyer != "" || ds.Orders[0].Datetime != "1993-10-23 17:25:40" {
		t.Errorf("unexpected order: %+v", ds.Orders[0])
	}
	if len(ds.OrderItems) != 1 {
		t.Fatalf("got %d order items, want 1", len(ds.OrderItems))
	}
	if ds.OrderItems[0].Datetime != ds.Orders[0].Datetime {
		t.Errorf("order item datetime %q has no matching order", ds.OrderItems[0].Datetime)
	}
}

func TestSaleSkippedWithoutSellerOrItem(t *testing.T) {
	n := NewNormalizer()

	records := []ingest.Record{
		activityRecord("Alan", "", "Danielle", "0.6", "1", ""),
		activityRecord("Alan", "golden (pomme)", "", "0.6", "1", ""),
	}
	ds := n.Build(records, ingest.Catalogue{})

	if len(ds.Sales) != 0 {
		t.Errorf("records without item or seller produced %d sales", len(ds.Sales))
	}
	// La règle du panier, elle, reste active pour ces enregistrements
	if len(ds.Baskets) != 2 {
		t.Errorf("got %d basket lines, want 2", len(ds.Baskets))
	}
}

func TestReviewRequiresRatingAndComments(t *testing.T) {
	n := NewNormalizer()

	base := activityRecord("Alan", "golden (pomme)", "Danielle", "", "", "1993-10-23 17:25:40")

	tests := []struct {
		name    string
		rating  string
		comment string
		want    int
	}{
		{"les deux présents", "5", "parfait", 1},
		{"note seule", "5", "", 0},
		{"commentaire seul", "", "parfait", 0},
		{"note hors bornes", "6", "parfait", 0},
		{"note illisible", "cinq", "parfait", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			r.Rating = tt.rating
			r.Comments = tt.comment
			ds := n.Build([]ingest.Record{r}, ingest.Catalogue{})
			if len(ds.Reviews) != tt.want {
				t.Errorf("got %d reviews, want %d", len(ds.Reviews), tt.want)
			}
		})
	}
}

// Un champ numérique absent donne un pointeur nil, jamais un zéro.
func TestAbsentNumericFieldsStayNil(t *testing.T) {
	n := NewNormalizer()

	records := []ingest.Record{
		activityRecord("Alan", "golden (pomme)", "Danielle", "", "", ""),
	}
	ds := n.Build(records, ingest.Catalogue{})

	if len(ds.Sales) != 1 || ds.Sales[0].Price != nil {
		t.Errorf("absent price should stay nil: %+v", ds.Sales)
	}
	if len(ds.Baskets) != 1 || ds.Baskets[0].Quantity != nil {
		t.Errorf("absent quantity should stay nil: %+v", ds.Baskets)
	}
}
