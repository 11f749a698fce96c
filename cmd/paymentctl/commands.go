package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sportify-backend/internal/domains/payment/gateway/razorpay"
	"sportify-backend/internal/domains/payment/service"
	"sportify-backend/pkg/jwt"
)

var errSignatureMismatch = errors.New("signature mismatch")

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "paymentctl",
		Short:         "Operator tools for Razorpay checkout payments",
		Long:          `paymentctl computes and checks checkout signatures and generates order receipts, using the same code paths as the HTTP functions.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		newSignCommand(),
		newVerifyCommand(),
		newReceiptCommand(),
		newTokenCommand(),
	)

	return rootCmd
}

// secretFrom prefers the flag, then KEY_SECRET, then RAZORPAY_KEY_SECRET.
func secretFrom(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	for _, key := range []string{"KEY_SECRET", "RAZORPAY_KEY_SECRET"} {
		if v := os.Getenv(key); v != "" {
			return v, nil
		}
	}
	return "", errors.New("no secret: pass --secret or set KEY_SECRET")
}

func newSignCommand() *cobra.Command {
	var orderID, paymentID, secret string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Print the expected checkout signature",
		Long:  `Compute HMAC-SHA256(secret, "<order>|<payment>") as lowercase hex.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := secretFrom(secret)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), razorpay.GenerateSignature(orderID, paymentID, key))
			return nil
		},
	}

	cmd.Flags().StringVar(&orderID, "order", "", "Razorpay order id")
	cmd.Flags().StringVar(&paymentID, "payment", "", "Razorpay payment id")
	cmd.Flags().StringVar(&secret, "secret", "", "Key secret (default: $KEY_SECRET)")
	_ = cmd.MarkFlagRequired("order")
	_ = cmd.MarkFlagRequired("payment")

	return cmd
}

func newVerifyCommand() *cobra.Command {
	var orderID, paymentID, signature, secret string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a checkout signature",
		Long:  `Exit with status 0 when the signature matches, 1 otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := secretFrom(secret)
			if err != nil {
				return err
			}
			if !razorpay.VerifySignature(orderID, paymentID, signature, key) {
				fmt.Fprintln(cmd.OutOrStdout(), "mismatch")
				return errSignatureMismatch
			}
			fmt.Fprintln(cmd.OutOrStdout(), "verified")
			return nil
		},
	}

	cmd.Flags().StringVar(&orderID, "order", "", "Razorpay order id")
	cmd.Flags().StringVar(&paymentID, "payment", "", "Razorpay payment id")
	cmd.Flags().StringVar(&signature, "signature", "", "Signature returned by checkout")
	cmd.Flags().StringVar(&secret, "secret", "", "Key secret (default: $KEY_SECRET)")
	_ = cmd.MarkFlagRequired("order")
	_ = cmd.MarkFlagRequired("payment")
	_ = cmd.MarkFlagRequired("signature")

	return cmd
}

func newReceiptCommand() *cobra.Command {
	var (
		count  int
		legacy bool
	)

	cmd := &cobra.Command{
		Use:   "receipt",
		Short: "Generate order receipts",
		Long:  `Print fresh receipts. --legacy prints the millisecond timestamp form, which collides within one millisecond.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be at least 1")
			}
			for i := 0; i < count; i++ {
				if legacy {
					fmt.Fprintln(cmd.OutOrStdout(), service.LegacyReceipt(time.Now()))
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), service.NewReceipt())
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of receipts")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "Use the timestamp form")

	return cmd
}

func newTokenCommand() *cobra.Command {
	var (
		subject, email, secret string
		ttl                    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for a local auth server",
		Long:  `Sign an HS256 token with the project JWT secret, shaped like an auth server session token. Useful for calling create-user against a local stack.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("SUPABASE_JWT_SECRET")
			}
			if secret == "" {
				return errors.New("no secret: pass --secret or set SUPABASE_JWT_SECRET")
			}
			token, err := jwt.NewManager(secret).GenerateAccessToken(subject, email, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "sub", "", "Identity id the token is issued for")
	cmd.Flags().StringVar(&email, "email", "", "Email claim")
	cmd.Flags().StringVar(&secret, "secret", "", "JWT secret (default: $SUPABASE_JWT_SECRET)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("sub")

	return cmd
}
