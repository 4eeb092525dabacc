// Package load insère les lignes normalisées dans le schéma, dans l'ordre
// des dépendances et par lots atomiques.
package load

import (
	"database/sql"
	"fmt"

	"marche/database"
	"marche/internal/normalize"
)

// Loader charge un Dataset dans la base. Le handle est fourni par
// l'appelant ; le Loader ne supporte pas un schéma déjà peuplé (appeler
// database.Reset avant).
type Loader struct {
	uow database.UnitOfWork
}

// NewLoader crée un Loader sur un handle explicite.
func NewLoader(db *sql.DB) *Loader {
	return &Loader{uow: database.NewUnitOfWork(db)}
}

// Load insère les lots dans l'ordre des dépendances : utilisateurs et
// catégories d'abord, puis articles, puis ventes et commandes, enfin
// lignes de commande, paniers et avis. Chaque lot est une transaction
// tout-ou-rien ; le premier lot en échec interrompt les suivants, qui
// supposent les précédents complets. Un doublon de clé arrivant jusqu'ici
// est un défaut de normalisation et remonte en erreur.
func (l *Loader) Load(ds *normalize.Dataset) error {
	batches := []struct {
		name   string
		insert func(tx *sql.Tx) error
	}{
		{"user", func(tx *sql.Tx) error { return insertUsers(tx, ds.Users) }},
		{"category", func(tx *sql.Tx) error { return insertCategories(tx, ds.Categories) }},
		{"item", func(tx *sql.Tx) error { return insertItems(tx, ds.Items) }},
		{"sale", func(tx *sql.Tx) error { return insertSales(tx, ds.Sales) }},
		{"orderlist", func(tx *sql.Tx) error { return insertOrders(tx, ds.Orders) }},
		{"orderitem", func(tx *sql.Tx) error { return insertOrderItems(tx, ds.OrderItems) }},
		{"basket", func(tx *sql.Tx) error { return insertBaskets(tx, ds.Baskets) }},
		{"review", func(tx *sql.Tx) error { return insertReviews(tx, ds.Reviews) }},
	}

	for _, b := range batches {
		if err := l.uow.Execute(b.insert); err != nil {
			return fmt.Errorf("chargement du lot %s: %w", b.name, err)
		}
	}
	return nil
}

func insertUsers(tx *sql.Tx, users []database.User) error {
	stmt, err := tx.Prepare(`INSERT INTO user (user_name) VALUES (?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, u := range users {
		if _, err := stmt.Exec(u.Name); err != nil {
			return err
		}
	}
	return nil
}

func insertCategories(tx *sql.Tx, categories []database.Category) error {
	stmt, err := tx.Prepare(`INSERT INTO category (categ_name) VALUES (?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, c := range categories {
		if _, err := stmt.Exec(c.Name); err != nil {
			return err
		}
	}
	return nil
}

func insertItems(tx *sql.Tx, items []database.Item) error {
	stmt, err := tx.Prepare(`INSERT INTO item (categ_name, item_name) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, it := range items {
		if _, err := stmt.Exec(it.Category, it.Name); err != nil {
			return err
		}
	}
	return nil
}

func insertSales(tx *sql.Tx, sales []database.Sale) error {
	stmt, err := tx.Prepare(`INSERT INTO sale (seller, item_name, price) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, s := range sales {
		if _, err := stmt.Exec(s.Seller, s.Item, s.Price); err != nil {
			return err
		}
	}
	return nil
}

func insertOrders(tx *sql.Tx, orders []database.Order) error {
	stmt, err := tx.Prepare(`INSERT INTO orderlist (buyer, datetime) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, o := range orders {
		if _, err := stmt.Exec(o.Buyer, o.Datetime); err != nil {
			return err
		}
	}
	return nil
}

func insertOrderItems(tx *sql.Tx, items []database.OrderItem) error {
	stmt, err := tx.Prepare(`INSERT INTO orderitem (datetime, seller, item_name, quantity) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, oi := range items {
		if _, err := stmt.Exec(oi.Datetime, oi.Seller, oi.Item, oi.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func insertBaskets(tx *sql.Tx, baskets []database.BasketLine) error {
	stmt, err := tx.Prepare(`INSERT INTO basket (buyer, seller, item_name, quantity) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, b := range baskets {
		if _, err := stmt.Exec(b.Buyer, b.Seller, b.Item, b.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func insertReviews(tx *sql.Tx, reviews []database.Review) error {
	stmt, err := tx.Prepare(`INSERT INTO review (user_name, item_name, seller, rating, comments) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range reviews {
		if _, err := stmt.Exec(r.User, r.Item, r.Seller, r.Rating, r.Comments); err != nil {
			return err
		}
	}
	return nil
}
