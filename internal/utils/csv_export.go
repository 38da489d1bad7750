package utils

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"equiptrack/internal/lifecycle"
	"equiptrack/internal/models"
)

// RecordsCSV renders a company's records as a CSV download, one row per
// equipment slot so the export opens cleanly in a spreadsheet. Status is
// derived at export time like everywhere else.
func RecordsCSV(records []*models.ServiceRecord, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{
		"certificate_number",
		"category",
		"service_date",
		"retest_date",
		"status",
		"engineer_name",
		"equipment_name",
		"equipment_serial",
		"notes",
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, record := range records {
		retest := ""
		if record.RetestDate != nil && !record.RetestDate.IsZero() {
			retest = record.RetestDate.Format("2006-01-02")
		}
		status := string(lifecycle.Classify(record.RetestDate, now))

		wrote := false
		for _, slot := range record.Slots() {
			if slot.Name == "" && slot.Serial == "" {
				continue
			}
			row := []string{
				record.CertificateNumber,
				string(record.Category),
				record.ServiceDate.Format("2006-01-02"),
				retest,
				status,
				record.EngineerName,
				slot.Name,
				slot.Serial,
				record.Notes,
			}
			if err := writer.Write(row); err != nil {
				return nil, fmt.Errorf("failed to write csv row: %w", err)
			}
			wrote = true
		}

		if !wrote {
			row := []string{
				record.CertificateNumber,
				string(record.Category),
				record.ServiceDate.Format("2006-01-02"),
				retest,
				status,
				record.EngineerName,
				"",
				"",
				record.Notes,
			}
			if err := writer.Write(row); err != nil {
				return nil, fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
