package http

import (
	"encoding/csv"
	"io"

	"github.com/productagent/backend/internal/domain"
)

// maxCSVDescription bounds the Description column so spreadsheets stay readable.
const maxCSVDescription = 200

var csvHeader = []string{"Input", "ASIN", "Product Name", "Price", "Source", "Status", "Description", "Error"}

// writeCSV renders batch results as the bulk report CSV, one row per input.
func writeCSV(w io.Writer, results []domain.BatchItemResult) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, result := range results {
		if err := writer.Write(csvRow(result)); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func csvRow(result domain.BatchItemResult) []string {
	if result.Record == nil {
		errMsg := ""
		if result.Failure != nil {
			errMsg = result.Failure.Error
		}
		return []string{result.Input, "", "", "", "", "Error", "", errMsg}
	}

	record := result.Record

	price := record.Price.Discounted
	if price == "" {
		price = record.Price.Original
	}

	description := record.Description
	if len(description) > maxCSVDescription {
		description = description[:maxCSVDescription]
	}

	return []string{
		result.Input,
		record.ASIN,
		record.ProductName,
		price,
		record.SourceMethod,
		"OK",
		description,
		"",
	}
}
