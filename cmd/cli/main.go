package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "finbook-cli",
		Short: "Finbook CLI tool",
		Long:  `A command line interface for interacting with the Finbook API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Finbook API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income, expense and balance totals",
		Run: func(cmd *cobra.Command, args []string) {
			showSummary()
		},
	}
	rootCmd.AddCommand(summaryCmd)

	toursCmd := &cobra.Command{
		Use:   "tours",
		Short: "Tour operations",
	}

	toursListCmd := &cobra.Command{
		Use:   "list",
		Short: "List tours",
		Run: func(cmd *cobra.Command, args []string) {
			listTours()
		},
	}

	settlementsCmd := &cobra.Command{
		Use:   "settlements <tour-id>",
		Short: "Show who pays whom to settle a tour",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showSettlements(args[0])
		},
	}

	toursCmd.AddCommand(toursListCmd)
	toursCmd.AddCommand(settlementsCmd)
	rootCmd.AddCommand(toursCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func get(path string) []byte {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}

func showSummary() {
	body := get("/api/v1/summary")

	var result struct {
		Income  string `json:"income"`
		Expense string `json:"expense"`
		Balance string `json:"balance"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Income:  %s\n", result.Income)
	fmt.Printf("Expense: %s\n", result.Expense)
	fmt.Printf("Balance: %s\n", result.Balance)
}

func listTours() {
	body := get("/api/v1/tours")

	var result struct {
		Tours []struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Members []struct {
				Name string `json:"name"`
			} `json:"members"`
			Expenses []any `json:"expenses"`
		} `json:"tours"`
		Total int64 `json:"total"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Tours: %d\n", result.Total)
	for _, t := range result.Tours {
		fmt.Printf("  %s  %s (%d members, %d expenses)\n", t.ID, t.Name, len(t.Members), len(t.Expenses))
	}
}

func showSettlements(tourID string) {
	body := get("/api/v1/tours/" + tourID + "/settlements")

	var result struct {
		Settlements []struct {
			From   string  `json:"from"`
			To     string  `json:"to"`
			Amount float64 `json:"amount"`
		} `json:"settlements"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if len(result.Settlements) == 0 {
		fmt.Println("All settled up")
		return
	}

	for _, s := range result.Settlements {
		fmt.Printf("%s pays %s %.2f\n", s.From, s.To, s.Amount)
	}
}
