package ingest

import (
	"bufio"
	"fmt"
	"os"
)

// ReadLines lit un fichier source ligne à ligne. Simple enveloppe d'E/S :
// aucun traitement de contenu ici, le découpage appartient au parseur.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lecture de %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("lecture de %s: %w", path, err)
	}
	return lines, nil
}
