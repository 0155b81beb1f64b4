package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iho/gaapledger/internal/adapter/http/dto"
	"github.com/iho/gaapledger/internal/output"
	"github.com/iho/gaapledger/internal/scenario"
)

func booksCmd(newClient func() *apiClient) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Book operations",
	}

	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var book dto.BookResponse
			err := newClient().do(cmd.Context(), http.MethodPost, "/api/v1/books/", nil,
				dto.CreateBookRequest{Name: args[0]}, &book)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), book)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List books",
		RunE: func(cmd *cobra.Command, args []string) error {
			var list dto.ListBooksResponse
			if err := newClient().do(cmd.Context(), http.MethodGet, "/api/v1/books/", nil, nil, &list); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCREATED")
			for _, b := range list.Books {
				fmt.Fprintf(w, "%s\t%s\t%s\n", b.ID, truncate(b.Name, 40), b.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(createCmd, listCmd)
	return cmd
}

func reportCmd(newClient func() *apiClient) *cobra.Command {
	var bookID, asOf, start, end string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Financial statements for a book",
	}
	cmd.PersistentFlags().StringVar(&bookID, "book", "", "Book ID")
	_ = cmd.MarkPersistentFlagRequired("book")

	report := func(name string, out any, query func() url.Values) *cobra.Command {
		return &cobra.Command{
			Use:   name,
			Short: "Print the " + name + " report",
			RunE: func(cmd *cobra.Command, args []string) error {
				path := "/api/v1/books/" + url.PathEscape(bookID) + "/reports/" + name
				if err := newClient().do(cmd.Context(), http.MethodGet, path, query(), nil, out); err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), out)
			},
		}
	}
	pointInTime := func() url.Values { return dateQuery("as_of", asOf) }
	period := func() url.Values {
		q := dateQuery("start", start)
		for k, v := range dateQuery("end", end) {
			q[k] = v
		}
		return q
	}

	balanceSheet := report("balance-sheet", &dto.BalanceSheetResponse{}, pointInTime)
	trialBalance := report("trial-balance", &dto.TrialBalanceResponse{}, pointInTime)
	incomeStatement := report("income-statement", &dto.IncomeStatementResponse{}, period)
	cashFlow := report("cash-flow", &dto.CashFlowResponse{}, period)

	for _, c := range []*cobra.Command{balanceSheet, trialBalance} {
		c.Flags().StringVar(&asOf, "as-of", "", "Report date (YYYY-MM-DD), defaults to the whole journal")
	}
	for _, c := range []*cobra.Command{incomeStatement, cashFlow} {
		c.Flags().StringVar(&start, "start", "", "Period start (YYYY-MM-DD)")
		c.Flags().StringVar(&end, "end", "", "Period end (YYYY-MM-DD)")
	}

	cmd.AddCommand(balanceSheet, incomeStatement, cashFlow, trialBalance)
	return cmd
}

func ledgerCmd(newClient func() *apiClient) *cobra.Command {
	var bookID string

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result dto.ConsistencyResponse
			path := "/api/v1/books/" + url.PathEscape(bookID) + "/consistency"
			err := newClient().do(cmd.Context(), http.MethodGet, path, nil, nil, &result)

			var apiErr *statusError
			if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
				_ = json.Unmarshal([]byte(apiErr.Body), &result)
				fmt.Fprintf(cmd.OutOrStdout(), "Consistency check FAILED\n")
				if result.Message != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "Reason: %s\n", result.Message)
				}
				return errors.New("ledger is inconsistent")
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Consistency check PASSED\n")
			fmt.Fprintf(cmd.OutOrStdout(), "Consistent: %v\n", result.Consistent)
			fmt.Fprintf(cmd.OutOrStdout(), "Status: %s\n", result.Status)
			return nil
		},
	}
	consistencyCmd.Flags().StringVar(&bookID, "book", "", "Book ID")
	_ = consistencyCmd.MarkFlagRequired("book")

	cmd.AddCommand(consistencyCmd)
	return cmd
}

func scenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Replay scenario files without a server",
	}

	runCmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Load a YAML scenario and print its journal, T-accounts and statements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenario.LoadFile(args[0])
			if err != nil {
				return err
			}
			l, err := s.Build()
			if err != nil {
				return fmt.Errorf("scenario %q: %w", s.Name, err)
			}
			return output.WriteReport(cmd.OutOrStdout(), s.Name, l)
		},
	}

	cmd.AddCommand(runCmd)
	return cmd
}

func dateQuery(key, value string) url.Values {
	q := url.Values{}
	if value != "" {
		q.Set(key, value)
	}
	return q
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
