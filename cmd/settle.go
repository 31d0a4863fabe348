package cmd

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	st "tripmate/store/store"
	"tripmate/trip"
)

var inputPath string
var outputPath string

// settleCommand computes who owes whom from a CSV of paid expenses,
// without needing a running server. Input rows are
// "user_id,description,amount"; output rows are "from,to,amount".
func settleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settle",
		Short:   "settle group expenses from a CSV file",
		Long:    `Reads a CSV of expenses (user_id,description,amount), splits the total equally across all listed users and prints the minimal transfers that settle the balance.`,
		Example: `tripmate settle --input expenses.csv --output transfers.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputPath == "" {
				return cmd.Help()
			}

			inputFile, err := os.Open(inputPath)
			if err != nil {
				return err
			}
			defer func(inputFile *os.File) {
				if err := inputFile.Close(); err != nil {
					log.Fatalf("Failed to close input file: %v", err)
				}
			}(inputFile)

			csvContent, err := csv.NewReader(inputFile).ReadAll()
			if err != nil {
				return err
			}

			expenses, users, err := parseExpenseCSV(csvContent)
			if err != nil {
				return fmt.Errorf("failed to parse CSV: %w", err)
			}
			if len(expenses) == 0 {
				return fmt.Errorf("no valid expenses found in the CSV")
			}

			balances := trip.Balances(expenses, users)
			transfers := trip.Settle(balances)

			for _, transfer := range transfers {
				fmt.Printf("user %d pays user %d: %.2f\n", transfer.FromID, transfer.ToID, transfer.Amount)
			}
			if len(transfers) == 0 {
				fmt.Println("all settled, nothing to transfer")
			}

			if outputPath == "" {
				return nil
			}
			return writeTransferCSV(outputPath, transfers)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to the expense CSV")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "optional path for the transfer CSV")

	return cmd
}

func parseExpenseCSV(rows [][]string) ([]st.Expense, []st.User, error) {
	expenses := make([]st.Expense, 0, len(rows))
	seen := map[int]bool{}
	var users []st.User

	for i, row := range rows {
		if len(row) != 3 {
			return nil, nil, fmt.Errorf("row %d: expected 3 columns, got %d", i+1, len(row))
		}
		userID, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: bad user id %q", i+1, row[0])
		}
		amount, err := strconv.ParseFloat(row[2], 64)
		if err != nil || amount <= 0 {
			return nil, nil, fmt.Errorf("row %d: bad amount %q", i+1, row[2])
		}

		expenses = append(expenses, st.Expense{
			UserID:      userID,
			Description: row[1],
			Amount:      amount,
			Category:    st.CategoryOther,
		})
		if !seen[userID] {
			seen[userID] = true
			users = append(users, st.User{ID: userID})
		}
	}
	return expenses, users, nil
}

func writeTransferCSV(path string, transfers []trip.Transfer) error {
	outputFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer outputFile.Close()

	writer := csv.NewWriter(outputFile)
	defer writer.Flush()

	for _, transfer := range transfers {
		record := []string{
			strconv.Itoa(transfer.FromID),
			strconv.Itoa(transfer.ToID),
			strconv.FormatFloat(transfer.Amount, 'f', 2, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}
