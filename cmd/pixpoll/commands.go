package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grachmannico95/pix-relay/internal/clock"
	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/grachmannico95/pix-relay/internal/poller"
	"github.com/grachmannico95/pix-relay/internal/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func createCmd(opts *globalOptions) *cobra.Command {
	var (
		amount      string
		name        string
		email       string
		document    string
		description string
		watch       bool
		cashoutKeys []string
		keyType     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a PIX charge and optionally poll it",
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid --amount %q", amount)
			}

			var req createRequest
			req.ExternalID = service.NewExternalRef()
			req.Amount = value
			req.Customer.Name = name
			req.Customer.Email = email
			req.Customer.Document.Number = document
			req.Description = description

			ctx, stop := signalContext()
			defer stop()

			client := newRelayClient(opts.baseURL)
			tx, err := client.createTransaction(ctx, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Transaction: %s\n", tx.ID)
			fmt.Fprintf(out, "Status:      %s\n", tx.Status)
			fmt.Fprintf(out, "Amount:      %s\n", tx.Amount.StringFixed(2))
			fmt.Fprintf(out, "PIX code:    %s\n", tx.PixPayload)
			if !tx.ExpiresAt.IsZero() {
				fmt.Fprintf(out, "Expires at:  %s\n", tx.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
			}

			if !watch {
				return nil
			}

			handoff := poller.Handoff{
				TransactionID: tx.ID,
				Amount:        tx.Amount,
				PixPayload:    tx.PixPayload,
				ExpiresAt:     tx.ExpiresAt,
				UsedKeys:      poller.NewKeyLedger(),
			}
			result, err := pollUntilDone(ctx, opts, handoff, out)
			if err != nil || len(cashoutKeys) == 0 {
				return err
			}

			for _, key := range cashoutKeys {
				if !result.Handoff.UsedKeys.MarkUsed(key) {
					fmt.Fprintf(out, "Skipping %s: already used in this session\n", key)
					continue
				}
				ack, err := client.cashout(ctx, cashoutBody{
					ExternalID: service.NewExternalRef(),
					Amount:     result.Handoff.Amount,
					PixKey:     key,
					KeyType:    keyType,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Cashout to %s requested: %v\n", key, ack["id"])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Charge amount in BRL")
	cmd.Flags().StringVar(&name, "name", "", "Payer name")
	cmd.Flags().StringVar(&email, "email", "", "Payer email")
	cmd.Flags().StringVar(&document, "document", "", "Payer CPF or CNPJ")
	cmd.Flags().StringVar(&description, "description", "", "Charge description")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Poll the charge until it is paid or the budget runs out")
	cmd.Flags().StringSliceVar(&cashoutKeys, "cashout-key", nil, "PIX keys to pay out to once the charge is paid")
	cmd.Flags().StringVar(&keyType, "key-type", string(domain.PixKeyEmail), "Type of the cashout keys (EMAIL, CPF, CNPJ, PHONE)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("document")

	return cmd
}

func watchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [transaction-id]",
		Short: "Poll an existing transaction until it is paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			_, err := pollUntilDone(ctx, opts, poller.Handoff{TransactionID: args[0]}, cmd.OutOrStdout())
			return err
		},
	}
}

func cashoutCmd(opts *globalOptions) *cobra.Command {
	var (
		amount      string
		externalID  string
		pixKey      string
		keyType     string
		description string
	)

	cmd := &cobra.Command{
		Use:   "cashout",
		Short: "Request a PIX cashout",
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid --amount %q", amount)
			}

			if externalID == "" {
				externalID = service.NewExternalRef()
			}

			ctx, stop := signalContext()
			defer stop()

			ack, err := newRelayClient(opts.baseURL).cashout(ctx, cashoutBody{
				ExternalID:  externalID,
				Amount:      value,
				PixKey:      pixKey,
				KeyType:     keyType,
				Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cashout requested: id=%v status=%v\n", ack["id"], ack["status"])
			return nil
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Cashout amount in BRL")
	cmd.Flags().StringVar(&externalID, "external-id", "", "Merchant reference (generated when empty)")
	cmd.Flags().StringVar(&pixKey, "pix-key", "", "Destination PIX key")
	cmd.Flags().StringVar(&keyType, "key-type", string(domain.PixKeyEmail), "Key type (EMAIL, CPF, CNPJ, PHONE)")
	cmd.Flags().StringVar(&description, "description", "", "Cashout description")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("pix-key")

	return cmd
}

// pollUntilDone runs one polling session and reports how it ended.
func pollUntilDone(ctx context.Context, opts *globalOptions, h poller.Handoff, out io.Writer) (poller.Result, error) {
	fetcher := poller.NewHTTPStatusFetcher(opts.baseURL, opts.statusPath, nil)
	manager := poller.NewManager(fetcher, clock.New(), poller.Config{
		Interval: opts.interval,
		Timeout:  opts.timeout,
	}, opts.logger())

	results := make(chan poller.Result, 1)
	session, err := manager.Start(ctx, h, func(r poller.Result) { results <- r })
	if err != nil {
		return poller.Result{}, err
	}

	fmt.Fprintf(out, "Polling %s every %s (budget %s)\n", h.TransactionID, opts.interval, opts.timeout)

	select {
	case <-session.Done():
	case <-ctx.Done():
		session.Stop()
		<-session.Done()
	}

	switch session.State() {
	case poller.StateSucceeded:
		r := <-results
		fmt.Fprintf(out, "Paid (%s) after %d polls\n", r.RawStatus, r.Polls)
		return r, nil
	case poller.StateTimedOut:
		return poller.Result{}, fmt.Errorf("transaction %s not paid within %s (last status %q)", h.TransactionID, opts.timeout, session.LastStatus())
	default:
		return poller.Result{}, fmt.Errorf("polling of %s interrupted", h.TransactionID)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
