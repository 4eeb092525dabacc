// Package normalize transforme les enregistrements bruts des deux extraits
// en lignes dédupliquées du schéma relationnel. C'est ici que se décident
// la politique de déduplication, le traitement des champs absents et la
// dérivation des identités composées.
package normalize

import (
	"fmt"
	"log"
	"strconv"

	"marche/database"
	"marche/internal/ingest"
)

// Dataset lignes candidates dédupliquées, par table cible. L'ordre des
// lignes survivantes n'est pas significatif : le moteur impose son propre
// ordre sur les tables à clé de substitution.
type Dataset struct {
	Users      []database.User
	Categories []database.Category
	Items      []database.Item
	Sales      []database.Sale
	Orders     []database.Order
	OrderItems []database.OrderItem
	Baskets    []database.BasketLine
	Reviews    []database.Review
}

// Normalizer applique les règles d'extraction dans l'ordre et collapse les
// tuples identiques. Il ne vérifie pas l'intégrité référentielle : c'est le
// rôle du Loader via l'ordre d'insertion.
type Normalizer struct{}

// NewNormalizer crée un nouveau Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Build construit le Dataset complet à partir du journal d'activité et de
// l'inventaire.
func (n *Normalizer) Build(records []ingest.Record, cat ingest.Catalogue) *Dataset {
	ds := &Dataset{}
	n.extractUsers(ds, records)
	n.extractCategories(ds, cat)
	n.extractItems(ds, cat)
	n.extractSales(ds, records)
	n.extractOrders(ds, records)
	n.extractOrderItems(ds, records)
	n.extractBaskets(ds, records)
	n.extractReviews(ds, records)
	return ds
}

// extractUsers retient acheteur et vendeur de chaque transaction validée.
// Un nom vu uniquement sur des lignes de panier ne crée pas d'utilisateur.
func (n *Normalizer) extractUsers(ds *Dataset, records []ingest.Record) {
	seen := make(map[string]struct{})
	for _, r := range records {
		if r.Status() != ingest.StatusCommitted {
			continue
		}
		for _, name := range []string{r.Buyer, r.Seller} {
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			ds.Users = append(ds.Users, database.User{Name: name})
		}
	}
}

// extractCategories fixe l'univers des catégories depuis l'en-tête.
func (n *Normalizer) extractCategories(ds *Dataset, cat ingest.Catalogue) {
	seen := make(map[string]struct{})
	for _, name := range cat.Categories {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		ds.Categories = append(ds.Categories, database.Category{Name: name})
	}
}

// extractItems émet un article par cellule non vide du corps de
// l'inventaire, sous son nom qualifié "nom (catégorie)". Deux cellules de
// même nom nu dans deux catégories donnent deux articles distincts.
func (n *Normalizer) extractItems(ds *Dataset, cat ingest.Catalogue) {
	seen := make(map[string]struct{})
	for _, row := range cat.Rows {
		for i, cell := range row {
			if cell == "" || i >= len(cat.Categories) {
				continue
			}
			categ := cat.Categories[i]
			name := cell + " (" + categ + ")"
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			ds.Items = append(ds.Items, database.Item{Name: name, Category: categ})
		}
	}
}

// extractSales émet une mise en vente (vendeur, article, prix) par
// enregistrement, que la transaction soit validée ou non. Un enregistrement
// sans vendeur ou sans article est écarté pour cette règle seulement.
func (n *Normalizer) extractSales(ds *Dataset, records []ingest.Record) {
	seen := make(map[string]struct{})
	for i, r := range records {
		if r.Seller == "" || r.Item == "" {
			continue
		}
		price, ok := parseFloat(r.Price, i, "prix")
		if !ok {
			continue
		}
		key := r.Seller + "\x00" + r.Item + "\x00" + r.Price
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		ds.Sales = append(ds.Sales, database.Sale{Seller: r.Seller, Item: r.Item, Price: price})
	}
}

// extractOrders émet un en-tête de commande (acheteur, datetime) par
// transaction validée. Un acheteur absent ne bloque pas la règle : les
// lignes de commande de cette datetime doivent trouver leur en-tête.
func (n *Normalizer) extractOrders(ds *Dataset, records []ingest.Record) {
	seen := make(map[string]struct{})
	for _, r := range records {
		if r.Status() != ingest.StatusCommitted {
			continue
		}
		key := r.Buyer + "\x00" + r.Timestamp
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		ds.Orders = append(ds.Orders, database.Order{Buyer: r.Buyer, Datetime: r.Timestamp})
	}
}

// extractOrderItems émet une ligne de commande (article, vendeur,
// quantité, datetime) par transaction validée.
func (n *Normalizer) extractOrderItems(ds *Dataset, records []ingest.Record) {
	seen := make(map[string]struct{})
	for i, r := range records {
		if r.Status() != ingest.StatusCommitted {
			continue
		}
		quantity, ok := parseInt(r.Quantity, i, "quantité")
		if !ok {
			continue
		}
		key := r.Item + "\x00" + r.Seller + "\x00" + r.Quantity + "\x00" + r.Timestamp
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		ds.OrderItems = append(ds.OrderItems, database.OrderItem{
			Datetime: r.Timestamp,
			Seller:   r.Seller,
			Item:     r.Item,
			Quantity: quantity,
		})
	}
}

// extractBaskets émet une ligne de panier (acheteur, vendeur, article,
// quantité) par sélection en cours — jamais pour une transaction validée.
func (n *Normalizer) extractBaskets(ds *Dataset, records []ingest.Record) {
	seen := make(map[string]struct{})
	for i, r := range records {
		if r.Status() != ingest.StatusPending {
			continue
		}
		quantity, ok := parseInt(r.Quantity, i, "quantité")
		if !ok {
			continue
		}
		key := r.Buyer + "\x00" + r.Seller + "\x00" + r.Item + "\x00" + r.Quantity
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		ds.Baskets = append(ds.Baskets, database.BasketLine{
			Buyer:    r.Buyer,
			Seller:   r.Seller,
			Item:     r.Item,
			Quantity: quantity,
		})
	}
}

// extractReviews émet un avis uniquement quand note et commentaire sont
// tous deux présents ; la note doit être un entier entre 1 et 5.
func (n *Normalizer) extractReviews(ds *Dataset, records []ingest.Record) {
	seen := make(map[string]struct{})
	for i, r := range records {
		if r.Rating == "" || r.Comments == "" {
			continue
		}
		rating, err := strconv.Atoi(r.Rating)
		if err != nil || rating < 1 || rating > 5 {
			log.Printf("normalisation: enregistrement %d écarté pour les avis (note %q invalide)", i+1, r.Rating)
			continue
		}
		key := fmt.Sprintf("%s\x00%s\x00%s\x00%d\x00%s", r.Buyer, r.Item, r.Seller, rating, r.Comments)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		ds.Reviews = append(ds.Reviews, database.Review{
			User:     r.Buyer,
			Item:     r.Item,
			Seller:   r.Seller,
			Rating:   rating,
			Comments: r.Comments,
		})
	}
}

// parseFloat convertit un champ numérique optionnel : absent → nil (jamais
// zéro), illisible → enregistrement écarté pour la règle courante.
func parseFloat(raw string, idx int, field string) (*float64, bool) {
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("normalisation: enregistrement %d écarté (%s %q illisible)", idx+1, field, raw)
		return nil, false
	}
	return &v, true
}

// parseInt convertit un champ entier optionnel, mêmes règles que parseFloat.
func parseInt(raw string, idx int, field string) (*int, bool) {
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("normalisation: enregistrement %d écarté (%s %q illisible)", idx+1, field, raw)
		return nil, false
	}
	return &v, true
}
