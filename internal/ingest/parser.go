package ingest

import (
	"log"
	"strings"
)

// Delimiter séparateur de champs des deux extraits sources
const Delimiter = "\t"

// Status statut explicite d'un enregistrement d'activité : la présence de
// la datetime départage transaction validée et panier en cours.
type Status int

const (
	// StatusPending sélection en cours, non validée (datetime absente)
	StatusPending Status = iota
	// StatusCommitted transaction validée (datetime présente)
	StatusCommitted
)

// Record enregistrement du journal d'activité, champs nommés dans l'ordre
// du fichier source. Chaque champ est du texte brut ; la chaîne vide est la
// sentinelle "champ absent", distincte d'un zéro.
type Record struct {
	Buyer     string
	Item      string
	Seller    string
	Price     string
	Quantity  string
	Timestamp string
	Rating    string
	Comments  string
}

// recordFieldCount nombre minimal de champs d'une ligne d'activité
const recordFieldCount = 8

// Status retourne le statut de l'enregistrement, dérivé de la datetime.
func (r Record) Status() Status {
	if r.Timestamp == "" {
		return StatusPending
	}
	return StatusCommitted
}

// Catalogue inventaire brut : l'en-tête donne les catégories, chaque ligne
// du corps aligne positionnellement des noms d'articles sur ces catégories.
type Catalogue struct {
	Categories []string
	Rows       [][]string
}

// SplitFields découpe une ligne brute en champs ordonnés : fin de ligne et
// guillemets englobants retirés, ordre et champs vides de fin préservés
// (une ligne terminée par une tabulation produit bien un dernier champ vide).
func SplitFields(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Split(line, Delimiter)
	for i, f := range fields {
		fields[i] = strings.Trim(f, `"`)
	}
	return fields
}

// ParseUserLog transforme les lignes du journal d'activité en
// enregistrements nommés. La première ligne (en-tête) est ignorée ; une
// ligne trop courte est signalée puis écartée sans interrompre le lot.
func ParseUserLog(lines []string) []Record {
	var records []Record
	for i, line := range lines {
		if i == 0 {
			continue
		}
		fields := SplitFields(line)
		if len(fields) < recordFieldCount {
			log.Printf("journal d'activité: ligne %d ignorée (%d champs, %d attendus)",
				i+1, len(fields), recordFieldCount)
			continue
		}
		records = append(records, Record{
			Buyer:     fields[0],
			Item:      fields[1],
			Seller:    fields[2],
			Price:     fields[3],
			Quantity:  fields[4],
			Timestamp: fields[5],
			Rating:    fields[6],
			Comments:  fields[7],
		})
	}
	return records
}

// ParseCatalogue transforme les lignes de l'inventaire : l'en-tête fixe
// l'univers des catégories, le corps liste les articles cellule par
// cellule (cellule vide = pas d'article de cette catégorie sur la ligne).
func ParseCatalogue(lines []string) Catalogue {
	var cat Catalogue
	if len(lines) == 0 {
		return cat
	}
	cat.Categories = SplitFields(lines[0])
	for _, line := range lines[1:] {
		cat.Rows = append(cat.Rows, SplitFields(line))
	}
	return cat
}
