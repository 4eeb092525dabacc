package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"marche/database"
	"marche/internal/analytics"
	"marche/internal/ingest"
	"marche/internal/load"
	"marche/internal/normalize"
)

func main() {
	// Charge .env
	if err := godotenv.Load(); err != nil {
		log.Println("Attention: fichier .env non trouvé, utilisation des valeurs par défaut")
	}

	userLogPath := getEnv("USER_LOG", "gladiator.tsv")
	cataloguePath := getEnv("CATALOGUE", "inventaire.tsv")
	dbPath := getEnv("DB_PATH", "MyDataBase.db")

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatal("❌ Erreur ouverture base:", err)
	}
	defer db.Close()

	// Schéma remis à zéro à chaque passage : le chargement n'est pas
	// repris sur une base déjà peuplée
	if err := database.Reset(db); err != nil {
		log.Fatal("❌ Erreur réinitialisation du schéma:", err)
	}

	fmt.Println("🌱 Chargement des extraits...")

	userLines, err := ingest.ReadLines(userLogPath)
	if err != nil {
		log.Fatal("❌ ", err)
	}
	catalogueLines, err := ingest.ReadLines(cataloguePath)
	if err != nil {
		log.Fatal("❌ ", err)
	}

	records := ingest.ParseUserLog(userLines)
	catalogue := ingest.ParseCatalogue(catalogueLines)

	ds := normalize.NewNormalizer().Build(records, catalogue)

	if err := load.NewLoader(db).Load(ds); err != nil {
		log.Fatal("❌ Erreur chargement:", err)
	}

	fmt.Printf("✅ Base chargée: %d utilisateurs, %d articles, %d ventes, %d commandes\n",
		len(ds.Users), len(ds.Items), len(ds.Sales), len(ds.Orders))
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	if err := answerQuestions(analytics.NewAnalyticsRepository(db)); err != nil {
		log.Fatal("❌ Erreur requête:", err)
	}
}

// answerQuestions déroule le catalogue de questions et imprime les
// réponses dans l'ordre produit par le moteur de requêtes.
func answerQuestions(repo *analytics.AnalyticsRepository) error {
	count, err := repo.CountUsers()
	if err != nil {
		return err
	}
	fmt.Println("1. combien y a-t-il d'utilisateurs ?")
	fmt.Printf("   → %d\n", count)

	listing, err := repo.MostExpensiveListing()
	if err != nil {
		return err
	}
	fmt.Println("2. quel est l'article le plus cher et quel est son prix ?")
	if listing != nil {
		fmt.Printf("   → %s à %.2f EUR\n", listing.Item, *listing.Price)
	}

	unsold, err := repo.CountUnsoldItems()
	if err != nil {
		return err
	}
	fmt.Println("3. combien d'articles recensés ne sont vendus par personne ?")
	fmt.Printf("   → %d\n", unsold)

	topBuyer, err := repo.TopBasketBuyer()
	if err != nil {
		return err
	}
	fmt.Println("4. qui a le plus grand nombre d'articles dans son panier ?")
	if topBuyer != nil && topBuyer.Quantity != nil {
		fmt.Printf("   → %s, avec %d articles\n", topBuyer.Buyer, *topBuyer.Quantity)
	} else if topBuyer != nil {
		fmt.Printf("   → %s, quantités inconnues\n", topBuyer.Buyer)
	}

	contents, err := repo.BasketContents("Xian")
	if err != nil {
		return err
	}
	fmt.Println("5. quels sont les articles présents dans le panier de Xian et en quelle quantité ?")
	for _, c := range contents {
		if c.Quantity != nil {
			fmt.Printf("   → %s × %d\n", c.Item, *c.Quantity)
		} else {
			fmt.Printf("   → %s\n", c.Item)
		}
	}

	topSeller, err := repo.TopSellerForBuyer("Erwan")
	if err != nil {
		return err
	}
	fmt.Println("6. de quel vendeur-euse Erwan a-t-il le plus d'articles dans son panier ?")
	if topSeller != nil && topSeller.Quantity != nil {
		fmt.Printf("   → %s, avec %d articles\n", topSeller.Seller, *topSeller.Quantity)
	} else if topSeller != nil {
		fmt.Printf("   → %s, quantités inconnues\n", topSeller.Seller)
	}

	last, err := repo.LastOrderDate("Vera")
	if err != nil {
		return err
	}
	fmt.Println("7. de quand date la dernière transaction de Vera ?")
	if last != nil {
		fmt.Printf("   → %s\n", *last)
	}

	best, err := repo.BestRatedItem()
	if err != nil {
		return err
	}
	fmt.Println("8. quel article a la meilleure note moyenne ?")
	if best != nil {
		fmt.Printf("   → %s à %.1f\n", best.Item, best.Rating)
	}

	active, err := repo.MostActiveBuyer()
	if err != nil {
		return err
	}
	fmt.Println("9. qui a fait le plus d'achats et combien y en a-t-il ?")
	if active != nil {
		fmt.Printf("   → %s avec %d achats\n", active.Buyer, active.Count)
	}

	popular, err := repo.MostPopularSeller()
	if err != nil {
		return err
	}
	fmt.Println("10. qui est le vendeur le plus populaire (dont on a acheté le plus d'articles) ?")
	if popular != nil && popular.Quantity != nil {
		fmt.Printf("   → %s, avec %d articles vendus\n", popular.Seller, *popular.Quantity)
	} else if popular != nil {
		fmt.Printf("   → %s, quantités inconnues\n", popular.Seller)
	}

	return nil
}

// getEnv récupère une variable d'environnement avec fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
