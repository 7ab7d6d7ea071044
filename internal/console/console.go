package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"savings_bank/internal/domain"
	"savings_bank/internal/repository"
	"savings_bank/internal/teller"
	"savings_bank/pkg/validator"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
)

// Shell drives the interactive menu over the teller. It keeps a
// "current account" session: the top menu opens or accesses an
// account, the logged-in menu operates on it until log out or quit.
type Shell struct {
	teller  *teller.Teller
	scanner *bufio.Scanner
	out     io.Writer
	current domain.Account
	logger  *slog.Logger
}

func NewShell(t *teller.Teller, in io.Reader, out io.Writer, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.Default()
	}

	return &Shell{
		teller:  t,
		scanner: bufio.NewScanner(in),
		out:     out,
		logger:  logger,
	}
}

// Run loops on the top menu until the user quits or input ends.
// Operation failures are printed and never abort the loop.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		headerColor.Fprintln(s.out, "\n1. Open a new account")
		headerColor.Fprintln(s.out, "2. Access an existing account")
		headerColor.Fprintln(s.out, "3. Quit")

		choice, ok := s.prompt("Enter your choice (1/2/3): ")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			s.openAccount(ctx)
		case "2":
			s.accessAccount(ctx)
		case "3":
			fmt.Fprintln(s.out, "Quitting the program.")
			return nil
		default:
			errorColor.Fprintln(s.out, "Invalid choice. Please enter a valid option.")
		}

		if s.current != nil {
			if quit := s.loggedInMenu(ctx); quit {
				fmt.Fprintln(s.out, "Quitting the program.")
				return nil
			}
		}
	}
}

func (s *Shell) loggedInMenu(ctx context.Context) (quit bool) {
	for s.current != nil {
		if ctx.Err() != nil {
			return true
		}

		headerColor.Fprintln(s.out, "\nLogged-in Menu:")
		headerColor.Fprintln(s.out, "1. Make a deposit")
		headerColor.Fprintln(s.out, "2. Make a withdrawal")
		headerColor.Fprintln(s.out, "3. View account balance")
		headerColor.Fprintln(s.out, "4. View transaction history")
		headerColor.Fprintln(s.out, "5. Log out")
		headerColor.Fprintln(s.out, "6. Quit")

		choice, ok := s.prompt("Enter your choice (1/2/3/4/5/6): ")
		if !ok {
			return true
		}

		switch choice {
		case "1":
			s.deposit(ctx)
		case "2":
			s.withdraw(ctx)
		case "3":
			s.viewBalance(ctx)
		case "4":
			s.viewHistory(ctx)
		case "5":
			s.current = nil
			successColor.Fprintln(s.out, "Logged out successfully!")
		case "6":
			return true
		default:
			errorColor.Fprintln(s.out, "Invalid choice. Please enter a valid option.")
		}
	}
	return false
}

func (s *Shell) openAccount(ctx context.Context) {
	kindChoice, ok := s.prompt("Account type - 1. Basic, 2. Savings (1/2): ")
	if !ok {
		return
	}

	kind := domain.KindBasic
	if kindChoice == "2" {
		kind = domain.KindSavings
	}

	name, ok := s.prompt("Enter your name: ")
	if !ok {
		return
	}

	opening, ok := s.promptAmount("Enter the initial deposit amount: ")
	if !ok {
		return
	}

	account, err := s.teller.OpenAccount(ctx, name, kind, opening)
	if err != nil {
		s.printError(err)
		return
	}

	s.current = account
	successColor.Fprintf(s.out, "\nAccount created successfully! Your account number is: %d\n", account.Number())
}

func (s *Shell) accessAccount(ctx context.Context) {
	if s.current != nil {
		fmt.Fprintf(s.out, "You are already logged in with account number %d\n", s.current.Number())
		return
	}

	number, ok := s.promptNumber("Enter your account number: ")
	if !ok {
		return
	}

	account, err := s.teller.Access(ctx, number)
	if err != nil {
		s.printError(err)
		return
	}

	s.current = account
	successColor.Fprintln(s.out, "\nAccount accessed successfully!")
}

func (s *Shell) deposit(ctx context.Context) {
	amount, ok := s.promptAmount("Enter the deposit amount: ")
	if !ok {
		return
	}

	tx, err := s.teller.Deposit(ctx, s.current.Number(), amount)
	if err != nil {
		s.printError(err)
		return
	}

	successColor.Fprintln(s.out, "Deposit successful!")
	if tx.Interest.Sign() > 0 {
		fmt.Fprintf(s.out, "Interest credited: %s\n", formatMoney(tx.Interest))
	}
	fmt.Fprintf(s.out, "New balance: %s\n", formatMoney(tx.Balance))
}

func (s *Shell) withdraw(ctx context.Context) {
	amount, ok := s.promptAmount("Enter the withdrawal amount: ")
	if !ok {
		return
	}

	tx, err := s.teller.Withdraw(ctx, s.current.Number(), amount)
	if err != nil {
		s.printError(err)
		return
	}

	successColor.Fprintln(s.out, "Withdrawal successful!")
	fmt.Fprintf(s.out, "New balance: %s\n", formatMoney(tx.Balance))
}

func (s *Shell) viewBalance(ctx context.Context) {
	balance, err := s.teller.Balance(ctx, s.current.Number())
	if err != nil {
		s.printError(err)
		return
	}

	label := "Account Balance"
	if s.current.Kind() == domain.KindSavings {
		label = "Savings Account Balance"
	}
	fmt.Fprintf(s.out, "%s: %s\n", label, formatMoney(balance))
}

func (s *Shell) viewHistory(ctx context.Context) {
	history, err := s.teller.History(ctx, s.current.Number())
	if err != nil {
		s.printError(err)
		return
	}
	if len(history) == 0 {
		fmt.Fprintln(s.out, "No transaction history available.")
		return
	}

	header := "Transaction History"
	if s.current.Kind() == domain.KindSavings {
		header = "Savings Transaction History"
	}
	headerColor.Fprintf(s.out, "\n%s:\n", header)

	for _, tx := range history {
		line := fmt.Sprintf("%s: %s - %s (balance %s)",
			tx.CreatedAt.Format("2006-01-02 15:04:05"),
			title(string(tx.Type)),
			formatMoney(tx.Amount),
			formatMoney(tx.Balance))
		if tx.Interest.Sign() > 0 {
			line += fmt.Sprintf(" [interest %s]", formatMoney(tx.Interest))
		}
		fmt.Fprintln(s.out, line)
	}
}

func (s *Shell) prompt(message string) (string, bool) {
	fmt.Fprint(s.out, message)
	if !s.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.scanner.Text()), true
}

func (s *Shell) promptAmount(message string) (decimal.Decimal, bool) {
	text, ok := s.prompt(message)
	if !ok {
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		errorColor.Fprintln(s.out, "Please enter a numeric amount.")
		return decimal.Zero, false
	}
	return amount, true
}

func (s *Shell) promptNumber(message string) (int64, bool) {
	text, ok := s.prompt(message)
	if !ok {
		return 0, false
	}

	number, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		errorColor.Fprintln(s.out, "Please enter a numeric account number.")
		return 0, false
	}
	return number, true
}

func (s *Shell) printError(err error) {
	errorColor.Fprintln(s.out, errorMessage(err))
	s.logger.Debug("Operation failed", slog.String("error", err.Error()))
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return "Amount must be greater than zero. Please try again."
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "Insufficient funds. Please try again."
	case errors.Is(err, domain.ErrBelowMinimumBalance):
		return "Withdrawal would bring the balance below the required minimum."
	case errors.Is(err, repository.ErrNotFound):
		return "Account not found. Please check your account number."
	case errors.Is(err, validator.ErrAmountTooLarge):
		return "Amount exceeds the per-operation limit."
	case errors.Is(err, validator.ErrInvalidOwner):
		return "Please enter a valid name."
	default:
		return fmt.Sprintf("Operation failed: %v", err)
	}
}

// formatMoney renders a decimal amount as US dollars.
func formatMoney(amount decimal.Decimal) string {
	cents := amount.Round(2).Shift(2).IntPart()
	return money.New(cents, money.USD).Display()
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
