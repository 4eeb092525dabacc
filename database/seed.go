package database

import (
	"database/sql"
	"fmt"
)

// SeedDemo peuple le schéma avec le jeu d'essai de la maquette : quatre
// utilisateurs, cinq articles, leurs mises en vente, un avis et un panier.
// Toutes les valeurs passent en paramètres liés, jamais interpolées dans le
// SQL (les noms d'articles contiennent apostrophes et parenthèses).
func SeedDemo(db *sql.DB) error {
	uow := NewUnitOfWork(db)

	// 1. Utilisateurs
	users := []string{"Alan", "Béatrice", "Corentin", "Danielle"}
	err := uow.Execute(func(tx *sql.Tx) error {
		for _, name := range users {
			if _, err := tx.Exec(`INSERT INTO user (user_name) VALUES (?)`, name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed utilisateurs: %w", err)
	}

	// 2. Catégories et articles (noms qualifiés par la catégorie)
	items := []Item{
		{Name: "granny smith (pomme)", Category: "pomme"},
		{Name: "golden (pomme)", Category: "pomme"},
		{Name: "poire belle hélène (dessert)", Category: "dessert"},
		{Name: "blanc manger coco (gâteau)", Category: "gâteau"},
		{Name: "blanc manger coco (jeu)", Category: "jeu"},
	}
	err = uow.Execute(func(tx *sql.Tx) error {
		seen := make(map[string]struct{})
		for _, it := range items {
			if _, dup := seen[it.Category]; dup {
				continue
			}
			seen[it.Category] = struct{}{}
			if _, err := tx.Exec(`INSERT INTO category (categ_name) VALUES (?)`, it.Category); err != nil {
				return err
			}
		}
		for _, it := range items {
			if _, err := tx.Exec(`INSERT INTO item (categ_name, item_name) VALUES (?, ?)`, it.Category, it.Name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed articles: %w", err)
	}

	// 3. Mises en vente, au moins une par article ; prix connus pour les
	// lignes qui alimentent le calcul de panier
	price := func(v float64) *float64 { return &v }
	sales := []Sale{
		{Seller: "Alan", Item: "granny smith (pomme)"},
		{Seller: "Alan", Item: "golden (pomme)"},
		{Seller: "Béatrice", Item: "golden (pomme)"},
		{Seller: "Béatrice", Item: "poire belle hélène (dessert)"},
		{Seller: "Corentin", Item: "blanc manger coco (gâteau)"},
		{Seller: "Corentin", Item: "blanc manger coco (jeu)"},
		{Seller: "Danielle", Item: "granny smith (pomme)", Price: price(0.6)},
		{Seller: "Corentin", Item: "granny smith (pomme)", Price: price(0.3)},
		{Seller: "Danielle", Item: "golden (pomme)", Price: price(0.89)},
	}
	err = uow.Execute(func(tx *sql.Tx) error {
		for _, s := range sales {
			if _, err := tx.Exec(`INSERT INTO sale (seller, item_name, price) VALUES (?, ?, ?)`,
				s.Seller, s.Item, s.Price); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed mises en vente: %w", err)
	}

	// 4. Un avis sur la granny smith de Danielle
	err = uow.Execute(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO review (user_name, item_name, seller, rating, comments)
		                   VALUES (?, ?, ?, ?, ?)`,
			"Alan", "granny smith (pomme)", "Danielle", 5, "parfait")
		return err
	})
	if err != nil {
		return fmt.Errorf("seed avis: %w", err)
	}

	// 5. Un panier d'essai pour les questions de prix total
	baskets := []BasketLine{
		{Buyer: "Alan", Seller: "Danielle", Item: "golden (pomme)", Quantity: qty(10)},
		{Buyer: "Alan", Seller: "Corentin", Item: "granny smith (pomme)", Quantity: qty(5)},
	}
	err = uow.Execute(func(tx *sql.Tx) error {
		for _, b := range baskets {
			if _, err := tx.Exec(`INSERT INTO basket (buyer, seller, item_name, quantity)
			                      VALUES (?, ?, ?, ?)`,
				b.Buyer, b.Seller, b.Item, b.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed panier: %w", err)
	}

	return nil
}

func qty(v int) *int { return &v }
