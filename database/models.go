package database

// ============================================================================
// MODÈLES DE DONNÉES - Base normalisée
// ============================================================================

// User - Utilisateur (acheteur ou vendeur) identifié par son nom
type User struct {
	Name string `json:"user_name"`
}

// Category - Catégorie d'articles, fixée par l'en-tête de l'inventaire
type Category struct {
	Name string `json:"categ_name"`
}

// Item - Article du catalogue. Le nom est qualifié par sa catégorie,
// ex. "golden (pomme)" : deux articles de même nom nu mais de catégories
// différentes restent distincts.
type Item struct {
	Name     string `json:"item_name"`
	Category string `json:"categ_name"`
}

// Sale - Mise en vente d'un article par un vendeur, prix optionnel
type Sale struct {
	Seller string   `json:"seller"`
	Item   string   `json:"item_name"`
	Price  *float64 `json:"price,omitempty"`
}

// Order - Transaction validée (en-tête de commande). L'identifiant est un
// entier auto-incrémenté par le moteur ; la datetime sert de clé naturelle
// de jointure avec les lignes de commande.
type Order struct {
	ID       int64  `json:"order_id"`
	Buyer    string `json:"buyer"`
	Datetime string `json:"datetime"`
}

// OrderItem - Ligne d'une commande validée, rattachée par la datetime
type OrderItem struct {
	Datetime string `json:"datetime"`
	Seller   string `json:"seller"`
	Item     string `json:"item_name"`
	Quantity *int   `json:"quantity,omitempty"`
}

// BasketLine - Ligne de panier : sélection en cours, non validée
// (aucune datetime dans l'enregistrement source)
type BasketLine struct {
	Buyer    string `json:"buyer"`
	Seller   string `json:"seller"`
	Item     string `json:"item_name"`
	Quantity *int   `json:"quantity,omitempty"`
}

// Review - Avis d'un utilisateur sur la mise en vente d'un article,
// note entière entre 1 et 5
type Review struct {
	User     string `json:"user_name"`
	Item     string `json:"item_name"`
	Seller   string `json:"seller"`
	Rating   int    `json:"rating"`
	Comments string `json:"comments"`
}

// ============================================================================
// MODÈLES POUR LES RÉSULTATS DE REQUÊTES
// ============================================================================

// ListingPrice - Article mis en vente avec son prix
type ListingPrice struct {
	Item  string   `json:"item_name"`
	Price *float64 `json:"price,omitempty"`
}

// BuyerQuantity - Acheteur avec un total de quantités ; le total reste nil
// quand toutes les quantités du groupe sont absentes
type BuyerQuantity struct {
	Buyer    string `json:"buyer"`
	Quantity *int   `json:"quantity,omitempty"`
}

// SellerQuantity - Vendeur avec un total de quantités, mêmes règles que
// BuyerQuantity
type SellerQuantity struct {
	Seller   string `json:"seller"`
	Quantity *int   `json:"quantity,omitempty"`
}

// ItemQuantity - Article avec une quantité
type ItemQuantity struct {
	Item     string `json:"item_name"`
	Quantity *int   `json:"quantity,omitempty"`
}

// ItemRating - Article avec sa note moyenne
type ItemRating struct {
	Item   string  `json:"item_name"`
	Rating float64 `json:"avg_rating"`
}

// BuyerCount - Acheteur avec un nombre de commandes
type BuyerCount struct {
	Buyer string `json:"buyer"`
	Count int    `json:"count"`
}

// ItemSeller - Mise en vente projetée (article, vendeur)
type ItemSeller struct {
	Item   string `json:"item_name"`
	Seller string `json:"seller"`
}

// BasketLineTotal - Ligne de panier avec son prix total dérivé
// (price × quantity) ; Total reste nil quand aucune mise en vente ne
// correspond au couple (vendeur, article)
type BasketLineTotal struct {
	Buyer  string   `json:"buyer"`
	Seller string   `json:"seller"`
	Item   string   `json:"item_name"`
	Total  *float64 `json:"total,omitempty"`
}
