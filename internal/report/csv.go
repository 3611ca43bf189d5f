package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// WriteContributorCSV writes the per-contributor summary as a CSV table,
// one row per contributor with commit and ownership totals.
func WriteContributorCSV(doc *Document, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report folder: %w", err)
	}

	path := filepath.Join(dir, doc.Repository+"_contributors.csv")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating CSV file %s: %w", path, err)
	}

	writer := csv.NewWriter(file)
	if err := writeContributorRows(writer, doc); err != nil {
		file.Close()
		return "", err
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return "", fmt.Errorf("flushing CSV: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing CSV file %s: %w", path, err)
	}
	return path, nil
}

func writeContributorRows(writer *csv.Writer, doc *Document) error {
	header := []string{"Contributor", "Commits", "Added", "Deleted", "FinalLines", "FinalPercent", "FinalGrade"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, name := range sortedKeys(doc.CommitsPerMember) {
		stats := doc.CommitsPerMember[name]
		row := []string{
			name,
			fmt.Sprintf("%d", stats.Commits),
			fmt.Sprintf("%d", stats.Added),
			fmt.Sprintf("%d", stats.Deleted),
			"0", "0.00", "",
		}
		if loc, ok := doc.LOC.FinalLOC.Data[name]; ok {
			row[4] = fmt.Sprintf("%d", loc.Lines)
			row[5] = fmt.Sprintf("%.2f", loc.Percentage)
		}
		if grade, ok := doc.LOC.Grades[name]; ok {
			row[6] = fmt.Sprintf("%.2f", grade.FinalGrade)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	return nil
}
