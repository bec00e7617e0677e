// Package common provides the file I/O shared by the CLI commands: reading
// statement row dumps, reading the existing transaction set and writing
// extraction results.
package common

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"ledgerlift/internal/currencyutils"
	"ledgerlift/internal/fileutils"
	"ledgerlift/internal/logging"
	"ledgerlift/internal/models"
)

var log = logging.GetLogger()

// Delimiter is the CSV delimiter used for reading and writing.
var Delimiter rune = ','

// SetDelimiter sets the delimiter for CSV input and output.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// SetLogger installs a configured logger for the package.
func SetLogger(logger logging.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// ReadStatementRows reads a spreadsheet row dump, one logical row per line.
// Blank interior lines are kept so downstream line indices match the file;
// trailing blank lines are dropped.
func ReadStatementRows(filePath string) ([]string, error) {
	log.WithField(logging.FieldInputFile, filePath).Info("reading statement rows")

	file, err := fileutils.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening statement file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("failed to close file")
		}
	}()

	var rows []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		rows = append(rows, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading statement file: %w", err)
	}

	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}

	log.WithField(logging.FieldLineCount, len(rows)).Info("read statement rows")
	return rows, nil
}

// ReadStatementText reads a PDF-extracted text block as a single string.
func ReadStatementText(filePath string) (string, error) {
	log.WithField(logging.FieldInputFile, filePath).Info("reading statement text")

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("error reading statement file: %w", err)
	}
	return string(data), nil
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
func ReadCSVFile[TCSVRow any](filePath string) ([]TCSVRow, error) {
	log.WithField(logging.FieldInputFile, filePath).Info("reading CSV file")

	file, err := fileutils.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("failed to close file")
		}
	}()

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = Delimiter
		return r
	})

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.WithField(logging.FieldCount, len(rows)).Info("read CSV data")
	return rows, nil
}

// existingTransactionRecord mirrors models.ExistingTransaction with the
// amount kept as raw text, so formatted values like "1'234.56" or "CHF 42.10"
// survive the CSV edge.
type existingTransactionRecord struct {
	ID         string `csv:"ID"`
	Amount     string `csv:"Amount"`
	Currency   string `csv:"Currency"`
	Merchant   string `csv:"Merchant"`
	OccurredOn string `csv:"Date"`
	Category   string `csv:"Category"`
}

// ReadExistingTransactions loads the stored transaction set used by the
// duplicate detector. Amounts are accepted in any of the separator
// conventions handled by currencyutils.ParseAmount.
func ReadExistingTransactions(filePath string) ([]models.ExistingTransaction, error) {
	records, err := ReadCSVFile[existingTransactionRecord](filePath)
	if err != nil {
		return nil, err
	}

	transactions := make([]models.ExistingTransaction, 0, len(records))
	for _, rec := range records {
		amount, err := currencyutils.ParseAmount(rec.Amount)
		if err != nil {
			return nil, fmt.Errorf("transaction %q: %w", rec.ID, err)
		}
		transactions = append(transactions, models.ExistingTransaction{
			ID:         rec.ID,
			Amount:     amount,
			Currency:   rec.Currency,
			Merchant:   rec.Merchant,
			OccurredOn: rec.OccurredOn,
			Category:   rec.Category,
		})
	}
	return transactions, nil
}

// WriteTransactionsCSV writes extracted transactions as CSV to w.
func WriteTransactionsCSV(w io.Writer, transactions []models.ParsedTransaction) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(&transactions, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteTransactionsToCSV writes extracted transactions to a CSV file.
func WriteTransactionsToCSV(transactions []models.ParsedTransaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log.WithFields(
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
	).Info("writing transactions to CSV file")

	file, err := fileutils.CreateFile(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("failed to close file")
		}
	}()

	return WriteTransactionsCSV(file, transactions)
}

// WriteJSONFile writes v as indented JSON, the shape surfaced to callers.
func WriteJSONFile(v interface{}, jsonFile string) error {
	log.WithField(logging.FieldOutputFile, jsonFile).Info("writing JSON file")

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}
	data = append(data, '\n')

	if err := fileutils.WriteFile(jsonFile, data, 0640); err != nil {
		return fmt.Errorf("error writing JSON file: %w", err)
	}
	return nil
}
