package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"marche/database"
	"marche/internal/analytics"
)

// Exercice sur valeurs littérales : schéma neuf, jeu d'essai de la
// maquette, puis les questions de démonstration (pommes en vente, prix
// par ligne de panier, valeur totale du panier).
func main() {
	// Charge .env
	if err := godotenv.Load(); err != nil {
		log.Println("Attention: fichier .env non trouvé, utilisation des valeurs par défaut")
	}

	dbPath := getEnv("DB_PATH", "MyDataBase.db")

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatal("❌ Erreur ouverture base:", err)
	}
	defer db.Close()

	if err := database.Reset(db); err != nil {
		log.Fatal("❌ Erreur réinitialisation du schéma:", err)
	}

	fmt.Println("🌱 Insertion du jeu d'essai...")
	if err := database.SeedDemo(db); err != nil {
		log.Fatal("❌ Erreur lors du seed:", err)
	}
	fmt.Println("✅ Seed terminé avec succès!")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	repo := analytics.NewAnalyticsRepository(db)

	pommes, err := repo.SalesByCategory("pomme")
	if err != nil {
		log.Fatal("❌ Erreur requête:", err)
	}
	fmt.Println("Pommes mises en vente (article puis vendeur) :")
	for _, p := range pommes {
		fmt.Printf("   → %s — %s\n", p.Item, p.Seller)
	}

	totals, err := repo.BasketLineTotals()
	if err != nil {
		log.Fatal("❌ Erreur requête:", err)
	}
	fmt.Println("Prix total de chaque article du panier :")
	for _, t := range totals {
		if t.Total != nil {
			fmt.Printf("   → %s : total %.2f EUR\n", t.Item, *t.Total)
		} else {
			fmt.Printf("   → %s : prix inconnu\n", t.Item)
		}
	}

	total, err := repo.BasketTotalValue()
	if err != nil {
		log.Fatal("❌ Erreur requête:", err)
	}
	if total != nil {
		fmt.Printf("Prix total du panier : %.2f EUR\n", *total)
	}
}

// getEnv récupère une variable d'environnement avec fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
