// Package analytics regroupe le catalogue fixe de questions analytiques
// posées au schéma chargé. Toutes les requêtes sont paramétrées ; sur un
// schéma vide elles répondent par une séquence vide ou un pointeur nil,
// jamais par une erreur.
package analytics

import (
	"database/sql"
	"errors"

	"marche/database"
)

// AnalyticsRepository repository de lecture des questions analytiques
type AnalyticsRepository struct {
	database.BaseRepository
}

// NewAnalyticsRepository crée un nouveau repository sur un handle explicite
func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{
		BaseRepository: database.NewBaseRepository(db),
	}
}

// CountUsers retourne le nombre d'utilisateurs recensés.
func (r *AnalyticsRepository) CountUsers() (int, error) {
	var count int
	err := r.QueryRow(`SELECT COUNT(user_name) FROM user`).Scan(&count)
	return count, err
}

// MostExpensiveListing retourne la mise en vente la plus chère. Les
// ex æquo sont départagés par ordre lexicographique du nom d'article
// (politique choisie pour le déterminisme, l'original laissait le moteur
// décider). Retourne nil sans erreur si aucune vente n'a de prix.
func (r *AnalyticsRepository) MostExpensiveListing() (*database.ListingPrice, error) {
	row := r.QueryRow(`
		SELECT item_name, price FROM sale
		WHERE price IS NOT NULL
		ORDER BY price DESC, item_name ASC
		LIMIT 1
	`)

	var lp database.ListingPrice
	if err := row.Scan(&lp.Item, &lp.Price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &lp, nil
}

// CountUnsoldItems compte les articles recensés au catalogue que personne
// ne met en vente (différence ensembliste item \ sale).
func (r *AnalyticsRepository) CountUnsoldItems() (int, error) {
	var count int
	err := r.QueryRow(`
		SELECT COUNT(*) FROM (
			SELECT item_name FROM item
			EXCEPT
			SELECT item_name FROM sale
		)
	`).Scan(&count)
	return count, err
}

// TopBasketBuyer retourne l'acheteur dont le panier totalise la plus
// grande quantité d'articles. Quand toutes les quantités d'un panier sont
// absentes, la somme du groupe est inconnue (Quantity nil) ; le moteur
// classe ces groupes derrière les totaux connus.
func (r *AnalyticsRepository) TopBasketBuyer() (*database.BuyerQuantity, error) {
	row := r.QueryRow(`
		SELECT buyer, SUM(quantity) AS total FROM basket
		GROUP BY buyer
		ORDER BY total DESC, buyer ASC
		LIMIT 1
	`)

	var bq database.BuyerQuantity
	if err := row.Scan(&bq.Buyer, &bq.Quantity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &bq, nil
}

// BasketContents liste les articles du panier d'un acheteur, quantités
// décroissantes.
func (r *AnalyticsRepository) BasketContents(buyer string) ([]database.ItemQuantity, error) {
	rows, err := r.Query(`
		SELECT item_name, quantity FROM basket
		WHERE buyer = ?
		ORDER BY quantity DESC
	`, buyer)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contents []database.ItemQuantity
	for rows.Next() {
		var iq database.ItemQuantity
		if err := rows.Scan(&iq.Item, &iq.Quantity); err != nil {
			return nil, err
		}
		contents = append(contents, iq)
	}
	return contents, rows.Err()
}

// TopSellerForBuyer retourne le vendeur dont l'acheteur donné a le plus
// d'articles dans son panier. Quantity reste nil quand le groupe de tête
// n'a que des quantités absentes.
func (r *AnalyticsRepository) TopSellerForBuyer(buyer string) (*database.SellerQuantity, error) {
	row := r.QueryRow(`
		SELECT seller, SUM(quantity) AS total FROM basket
		WHERE buyer = ?
		GROUP BY seller
		ORDER BY total DESC, seller ASC
		LIMIT 1
	`, buyer)

	var sq database.SellerQuantity
	if err := row.Scan(&sq.Seller, &sq.Quantity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &sq, nil
}

// LastOrderDate retourne la datetime de la dernière transaction d'un
// acheteur, nil s'il n'en a aucune.
func (r *AnalyticsRepository) LastOrderDate(buyer string) (*string, error) {
	row := r.QueryRow(`
		SELECT datetime FROM orderlist
		WHERE buyer = ?
		ORDER BY datetime DESC
		LIMIT 1
	`, buyer)

	var dt string
	if err := row.Scan(&dt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &dt, nil
}

// BestRatedItem retourne l'article à la meilleure note moyenne. Le
// classement porte bien sur la moyenne agrégée, pas sur une note brute.
func (r *AnalyticsRepository) BestRatedItem() (*database.ItemRating, error) {
	row := r.QueryRow(`
		SELECT item_name, AVG(rating) AS avg_rating FROM review
		GROUP BY item_name
		ORDER BY avg_rating DESC, item_name ASC
		LIMIT 1
	`)

	var ir database.ItemRating
	if err := row.Scan(&ir.Item, &ir.Rating); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ir, nil
}

// MostActiveBuyer retourne l'acheteur ayant validé le plus de commandes.
func (r *AnalyticsRepository) MostActiveBuyer() (*database.BuyerCount, error) {
	row := r.QueryRow(`
		SELECT buyer, COUNT(buyer) AS count FROM orderlist
		GROUP BY buyer
		ORDER BY count DESC, buyer ASC
		LIMIT 1
	`)

	var bc database.BuyerCount
	if err := row.Scan(&bc.Buyer, &bc.Count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &bc, nil
}

// MostPopularSeller retourne le vendeur dont on a acheté le plus
// d'articles (somme des quantités des lignes de commande). Quantity reste
// nil quand le groupe de tête n'a que des quantités absentes.
func (r *AnalyticsRepository) MostPopularSeller() (*database.SellerQuantity, error) {
	row := r.QueryRow(`
		SELECT seller, SUM(quantity) AS total FROM orderitem
		GROUP BY seller
		ORDER BY total DESC, seller ASC
		LIMIT 1
	`)

	var sq database.SellerQuantity
	if err := row.Scan(&sq.Seller, &sq.Quantity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &sq, nil
}

// SalesByCategory liste les mises en vente d'une catégorie, triées par nom
// d'article puis par vendeur.
func (r *AnalyticsRepository) SalesByCategory(categ string) ([]database.ItemSeller, error) {
	rows, err := r.Query(`
		SELECT item_name, seller FROM sale
		WHERE item_name IN (SELECT item_name FROM item WHERE categ_name = ?)
		ORDER BY item_name ASC, seller ASC
	`, categ)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []database.ItemSeller
	for rows.Next() {
		var is database.ItemSeller
		if err := rows.Scan(&is.Item, &is.Seller); err != nil {
			return nil, err
		}
		listings = append(listings, is)
	}
	return listings, rows.Err()
}

// BasketLineTotals calcule le prix total de chaque ligne de panier
// (price × quantity) par jointure gauche avec les mises en vente sur le
// couple (vendeur, article). Une ligne sans mise en vente correspondante
// reste présente, avec un total nil.
func (r *AnalyticsRepository) BasketLineTotals() ([]database.BasketLineTotal, error) {
	rows, err := r.Query(`
		SELECT COALESCE(b.buyer, ''), b.seller, b.item_name, s.price * b.quantity AS total
		FROM basket b
		LEFT JOIN sale s ON b.seller = s.seller AND b.item_name = s.item_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []database.BasketLineTotal
	for rows.Next() {
		var blt database.BasketLineTotal
		if err := rows.Scan(&blt.Buyer, &blt.Seller, &blt.Item, &blt.Total); err != nil {
			return nil, err
		}
		totals = append(totals, blt)
	}
	return totals, rows.Err()
}

// BasketTotalValue calcule la valeur totale du panier, somme des
// price × quantity sur la même jointure. Retourne nil quand aucune ligne
// de panier n'a de prix connu.
func (r *AnalyticsRepository) BasketTotalValue() (*float64, error) {
	row := r.QueryRow(`
		SELECT SUM(s.price * b.quantity)
		FROM basket b
		LEFT JOIN sale s ON b.seller = s.seller AND b.item_name = s.item_name
	`)

	var total sql.NullFloat64
	if err := row.Scan(&total); err != nil {
		return nil, err
	}
	if !total.Valid {
		return nil, nil
	}
	return &total.Float64, nil
}
