package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mbahwiryo/storefront/internal/config"
	"github.com/mbahwiryo/storefront/internal/email"
	"github.com/mbahwiryo/storefront/internal/logger"
	"github.com/mbahwiryo/storefront/internal/model"
)

var rootCmd = &cobra.Command{
	Use:          "mailctl",
	Short:        "Order email tool for the storefront",
	SilenceUsage: true,
}

var sendTestCmd = &cobra.Command{
	Use:   "send-test",
	Short: "Send a test email through the configured provider",
	RunE:  runSendTest,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the order emails for an order JSON file",
	RunE:  runRender,
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the supported email providers",
	RunE:  runProviders,
}

var (
	sendTo      string
	sendSubject string
	orderFile   string
	renderAdmin bool
	renderWA    bool
	verbose     bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log dispatcher activity to stderr")

	sendTestCmd.Flags().StringVar(&sendTo, "to", "", "recipient address")
	sendTestCmd.Flags().StringVar(&sendSubject, "subject", "Test email", "subject line")
	sendTestCmd.MarkFlagRequired("to")

	renderCmd.Flags().StringVar(&orderFile, "order", "", "order JSON file, - for stdin")
	renderCmd.Flags().BoolVar(&renderAdmin, "admin", false, "render the admin alert instead of the customer confirmation")
	renderCmd.Flags().BoolVar(&renderWA, "whatsapp", false, "print the WhatsApp order link instead of HTML")
	renderCmd.MarkFlagRequired("order")

	rootCmd.AddCommand(sendTestCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(providersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func cliLogger() *logger.Logger {
	if !verbose {
		return logger.Nop()
	}
	return logger.NewWithWriter(os.Stderr, "debug", "text")
}

func runSendTest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	d := email.NewDispatcher(cfg.Dispatcher(), cliLogger())
	if err := d.Ready(); err != nil {
		return fmt.Errorf("email provider %q: %w", d.Vendor(), err)
	}

	html := fmt.Sprintf("<p>Test email from %s via %s at %s.</p>",
		cfg.Store.Brand, d.Vendor(), time.Now().Format(time.RFC1123))
	res := d.SendEmail(context.Background(), email.OutboundEmail{
		Recipients: []string{sendTo},
		Subject:    sendSubject,
		HTMLBody:   html,
	})

	if err := printJSON(cmd.OutOrStdout(), res); err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("send failed: %s", res.Error.Message)
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	order, err := readOrder(cmd.InOrStdin(), orderFile)
	if err != nil {
		return err
	}
	if order.Reference == "" {
		order.Reference = "MW-" + strings.ToUpper(uuid.NewString()[:8])
	}
	if err := order.Validate(); err != nil {
		return err
	}

	store := cfg.StoreInfo(time.Now())
	out := cmd.OutOrStdout()

	if renderWA {
		_, err := fmt.Fprintln(out, model.WhatsAppURL(store.SupportWhatsApp, order.WhatsAppMessage(store.Brand)))
		return err
	}

	render := email.CustomerEmailHTML
	if renderAdmin {
		render = email.AdminEmailHTML
	}
	html, err := render(order, store)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, html)
	return err
}

func runProviders(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	configured := email.ParseVendor(cfg.Email.Provider)
	out := cmd.OutOrStdout()
	for _, v := range email.SupportedVendors() {
		marker := " "
		if v == configured {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s\n", marker, v)
	}
	if !configured.Supported() {
		fmt.Fprintf(out, "configured provider %q is not supported\n", cfg.Email.Provider)
	}
	return nil
}

func readOrder(stdin io.Reader, path string) (*model.Order, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open order: %w", err)
		}
		defer f.Close()
		r = f
	}

	var order model.Order
	if err := json.NewDecoder(r).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode order: %w", err)
	}
	return &order, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
