package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL string
	timeout time.Duration
	userID  string
)

// bcryptGenerate is swapped out in tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pocketbank-cli",
		Short:         "PocketBank admin CLI",
		Long:          `A command line interface for operating the PocketBank API and database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the PocketBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "User id sent as X-User-ID for audit logs")

	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}
	ledgerCmd.AddCommand(consistencyCmd())

	rootCmd.AddCommand(
		ledgerCmd,
		summaryCmd(),
		reconcileCmd(),
		hashPasswordCmd(),
		migrateCmd(),
	)

	return rootCmd
}

func consistencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consistency",
		Short: "Check that balances equal the signed ledger total",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := apiGet("/api/v1/admin/reconciliation/consistency")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if status != http.StatusOK {
				fmt.Fprintf(out, "Consistency check FAILED (Status: %d)\nResponse: %s\n", status, truncate(string(body), 200))
				return fmt.Errorf("ledger inconsistent")
			}

			fmt.Fprintln(out, "Consistency check PASSED")
			return nil
		},
	}
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the admin dashboard summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getAndPrint(cmd.OutOrStdout(), "/api/v1/admin/summary")
		},
	}
}

type discrepancy struct {
	AccountID         string `json:"account_id"`
	AccountNumber     string `json:"account_number"`
	RecordedBalance   string `json:"recorded_balance"`
	CalculatedBalance string `json:"calculated_balance"`
	Difference        string `json:"difference"`
}

type reconciliationReport struct {
	TotalAccounts      int           `json:"total_accounts"`
	ReconciledAccounts int           `json:"reconciled_accounts"`
	Discrepancies      []discrepancy `json:"discrepancies"`
	LedgerConsistent   bool          `json:"ledger_consistent"`
	LedgerError        string        `json:"ledger_error"`
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile [account-id]",
		Short: "Reconcile one account, or every account when no id is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				return getAndPrint(out, "/api/v1/admin/accounts/"+args[0]+"/reconciliation")
			}

			status, body, err := apiGet("/api/v1/admin/reconciliation")
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return fmt.Errorf("reconciliation failed (status %d): %s", status, truncate(string(body), 200))
			}

			var report reconciliationReport
			if err := json.Unmarshal(body, &report); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			fmt.Fprintf(out, "Accounts: %d reconciled of %d\n", report.ReconciledAccounts, report.TotalAccounts)
			for _, d := range report.Discrepancies {
				fmt.Fprintf(out, "  %-14s %-26s recorded=%s ledger=%s diff=%s\n",
					d.AccountNumber, truncate(d.AccountID, 26), d.RecordedBalance, d.CalculatedBalance, d.Difference)
			}

			if !report.LedgerConsistent {
				fmt.Fprintf(out, "Ledger: INCONSISTENT (%s)\n", report.LedgerError)
				return fmt.Errorf("ledger inconsistent")
			}
			fmt.Fprintln(out, "Ledger: consistent")
			return nil
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash, e.g. for seeding an admin user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), cost)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}

	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}

func apiGet(path string) (int, []byte, error) {
	req, err := http.NewRequest(http.MethodGet, strings.TrimSuffix(baseURL, "/")+path, nil)
	if err != nil {
		return 0, nil, err
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, body, nil
}

func getAndPrint(out io.Writer, path string) error {
	status, body, err := apiGet(path)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("request failed (status %d): %s", status, truncate(string(body), 200))
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return printJSON(out, v)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
