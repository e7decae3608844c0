// Command cli is a small interactive driver for the mock ledger, standing in
// for the dashboard UI the browser build ships.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/demipay/demipay/infra/initializer"
	"github.com/demipay/demipay/pkg/config"
	"github.com/demipay/demipay/pkg/dto"
	"github.com/fatih/color"
	"golang.org/x/term"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	ctx := context.Background()
	app, err := initializer.Initialize(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize:", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		usage()
		return
	}
	if err := run(ctx, app, os.Args[1], os.Args[2:]); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  register <email> <full name...>")
	fmt.Println("  login <email>")
	fmt.Println("  logout")
	fmt.Println("  whoami")
	fmt.Println("  balance")
	fmt.Println("  wallet")
	fmt.Println("  send <recipient email> <amount> [note...]")
	fmt.Println("  receive <amount> [note...]")
	fmt.Println("  history [limit] [offset]")
	fmt.Println("  reset")
}

func run(ctx context.Context, app *initializer.App, cmd string, args []string) error {
	switch cmd {
	case "register":
		if len(args) < 2 {
			return fmt.Errorf("usage: register <email> <full name...>")
		}
		password, err := promptPassword("Choose a password: ")
		if err != nil {
			return err
		}
		u, err := app.Auth.Register(ctx, dto.RegisterInput{
			Email:    args[0],
			Password: password,
			FullName: strings.Join(args[1:], " "),
		})
		if err != nil {
			return err
		}
		color.Green("Registered %s (%s). Please login.", u.FullName, u.Email)

	case "login":
		if len(args) < 1 {
			return fmt.Errorf("usage: login <email>")
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		out, err := app.Auth.Login(ctx, args[0], password)
		if err != nil {
			return err
		}
		color.Green("Welcome back, %s", out.User.FullName)

	case "logout":
		if err := app.Auth.Logout(ctx); err != nil {
			return err
		}
		color.Green("Logged out.")

	case "whoami":
		u := app.Auth.CurrentUser()
		if u == nil {
			color.Yellow("Not logged in.")
			return nil
		}
		fmt.Printf("%s <%s>\n", u.FullName, u.Email)

	case "balance":
		b, err := app.Wallet.GetBalance(ctx)
		if err != nil {
			return err
		}
		color.Cyan("%.2f %s  (%s)", b.Balance, b.Currency, b.WalletAddress)

	case "wallet":
		w, err := app.Wallet.GetWalletDetails(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("id:       %s\n", w.ID)
		fmt.Printf("address:  %s\n", w.Address)
		fmt.Printf("balance:  %.2f %s\n", w.Balance, w.Currency)
		fmt.Printf("updated:  %s\n", w.UpdatedAt.Format("2006-01-02 15:04:05"))

	case "send":
		if len(args) < 2 {
			return fmt.Errorf("usage: send <recipient email> <amount> [note...]")
		}
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		out, err := app.Wallet.SendPayment(ctx, args[0], amount, strings.Join(args[2:], " "))
		if err != nil {
			return err
		}
		color.Green("Sent %.2f %s to %s (fee %.2f). Reference %s. New balance %.2f.",
			out.Transaction.Amount, out.Transaction.Currency,
			out.Transaction.RecipientEmail, out.Transaction.Fee,
			out.Transaction.Reference, out.NewBalance)

	case "receive":
		if len(args) < 1 {
			return fmt.Errorf("usage: receive <amount> [note...]")
		}
		amount, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		out, err := app.Wallet.ReceivePayment(ctx, amount, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		color.Green("Received %.2f %s. Reference %s. New balance %.2f.",
			out.Transaction.Amount, out.Transaction.Currency,
			out.Transaction.Reference, out.NewBalance)

	case "history":
		limit, offset := 0, 0
		if len(args) > 0 {
			limit, _ = strconv.Atoi(args[0])
		}
		if len(args) > 1 {
			offset, _ = strconv.Atoi(args[1])
		}
		page, err := app.Query.GetTransactionHistory(ctx, limit, offset)
		if err != nil {
			return err
		}
		for _, t := range page.Transactions {
			arrow := color.GreenString("<-")
			counterparty := t.SenderName
			if t.Kind == "send" {
				arrow = color.RedString("->")
				counterparty = t.RecipientName
			}
			fmt.Printf("%s  %s %s %-20s %8.2f %s  %s\n",
				t.CreatedAt.Format("2006-01-02 15:04"),
				t.Reference, arrow, counterparty, t.Amount, t.Currency, t.Note)
		}
		fmt.Printf("showing %d of %d\n", len(page.Transactions), page.Total)

	case "reset":
		if _, err := initializer.Reset(ctx, app.Config); err != nil {
			return err
		}
		color.Green("Database reset to seed.")

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	// Piped input falls back to a plain line read.
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
