// cmd/bankist/main.go
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"bankist/app"
	"bankist/config"
	"bankist/logger"
	"bankist/model"
	"bankist/service"

	"github.com/jonboulle/clockwork"
	"golang.org/x/term"
)

const dateLayout = "02/01/2006"

type console struct {
	app    *app.App
	in     *bufio.Reader
	out    io.Writer
	sess   *service.Session
	cancel func()
	sorted bool
}

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger.Init("error")

	a, err := app.New(cfg, clockwork.NewRealClock(), nil, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup: %v\n", err)
		os.Exit(1)
	}
	defer a.Shutdown(context.Background())

	c := &console{app: a, in: bufio.NewReader(os.Stdin), out: os.Stdout}
	c.run()
}

func (c *console) run() {
	fmt.Fprintln(c.out, "Log in to get started. Type \"help\" for commands.")
	for {
		fmt.Fprint(c.out, c.prompt())
		line, err := c.in.ReadString('\n')
		if err != nil {
			fmt.Fprintln(c.out)
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return
		}
		if err := c.dispatch(fields[0], fields[1:]); err != nil {
			fmt.Fprintf(c.out, "! %v\n", err)
		}
	}
}

func (c *console) prompt() string {
	if c.sess == nil || !c.sess.Active() {
		return "bankist> "
	}
	return fmt.Sprintf("%s [%s]> ", c.sess.Username(), service.FormatCountdown(c.sess.Remaining()))
}

func (c *console) dispatch(cmd string, args []string) error {
	ctx := context.Background()
	switch cmd {
	case "help":
		fmt.Fprintln(c.out, "login <user> | show | sort | transfer <to> <amount> | loan <amount> | close | logout | quit")
		return nil
	case "login":
		if len(args) != 1 {
			return errors.New("usage: login <user>")
		}
		pin, err := c.readSecret("PIN: ")
		if err != nil {
			return err
		}
		return c.login(ctx, args[0], pin)
	}

	if c.sess == nil {
		return service.ErrNoActiveSession
	}
	switch cmd {
	case "show":
		return c.show()
	case "sort":
		c.sorted = !c.sorted
		return c.show()
	case "transfer":
		if len(args) != 2 {
			return errors.New("usage: transfer <to> <amount>")
		}
		amount, err := service.ParseAmount(args[1])
		if err != nil {
			return err
		}
		if _, err := c.app.Transactions.Transfer(ctx, c.sess, args[0], amount); err != nil {
			return err
		}
		return c.show()
	case "loan":
		if len(args) != 1 {
			return errors.New("usage: loan <amount>")
		}
		amount, err := service.ParseAmount(args[0])
		if err != nil {
			return err
		}
		loan, err := c.app.Transactions.RequestLoan(ctx, c.sess, amount)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Loan of %s requested, due at %s\n", loan.Amount.StringFixed(2), loan.DueAt.Format("15:04:05"))
		return nil
	case "close":
		fmt.Fprint(c.out, "Confirm user: ")
		user, err := c.in.ReadString('\n')
		if err != nil {
			return err
		}
		pin, err := c.readSecret("Confirm PIN: ")
		if err != nil {
			return err
		}
		if err := c.app.Transactions.CloseAccount(ctx, c.sess, strings.TrimSpace(user), pin); err != nil {
			return err
		}
		c.reset()
		fmt.Fprintln(c.out, "Account closed. Log in to get started.")
		return nil
	case "logout":
		err := c.app.Sessions.Logout(ctx, c.sess)
		c.reset()
		return err
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (c *console) login(ctx context.Context, username, pin string) error {
	sess, err := c.app.Sessions.Login(ctx, username, pin)
	if err != nil {
		return err
	}
	c.reset()
	c.sess = sess

	events, cancel := c.app.Hub.Subscribe(sess.Username())
	c.cancel = cancel
	go c.watch(sess, events)

	snap, err := c.app.AccountViews.Snapshot(sess, false)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Welcome back, %s\n", snap.FirstName())
	return c.show()
}

// watch prints asynchronous outcomes: delayed loans and the end of the session.
func (c *console) watch(sess *service.Session, events <-chan model.Event) {
	for ev := range events {
		if ev.SessionID != "" && ev.SessionID != sess.ID() {
			continue
		}
		switch ev.Type {
		case model.EventLoanApplied:
			fmt.Fprintf(c.out, "\n* Loan of %s credited\n", ev.Amount.StringFixed(2))
		case model.EventLoanDiscarded:
			fmt.Fprintf(c.out, "\n* Loan of %s discarded\n", ev.Amount.StringFixed(2))
		case model.EventSessionEnded:
			if ev.Reason == string(model.EndExpired) {
				fmt.Fprintln(c.out, "\n* Session expired. Log in to get started.")
			}
			return
		}
	}
}

func (c *console) show() error {
	snap, err := c.app.AccountViews.Snapshot(c.sess, c.sorted)
	if err != nil {
		return err
	}
	for i := len(snap.Movements) - 1; i >= 0; i-- {
		amount := snap.Movements[i]
		kind := "deposit"
		if amount.IsNegative() {
			kind = "withdrawal"
		}
		fmt.Fprintf(c.out, "  %2d %-10s %s %14s %s\n", i+1, kind, snap.MovementsDates[i].Format(dateLayout), amount.StringFixed(2), snap.Currency)
	}
	fmt.Fprintf(c.out, "Balance %s %s | In %s | Out %s | Interest %s\n",
		snap.Balance.StringFixed(2), snap.Currency,
		snap.TotalIn.StringFixed(2), snap.TotalOut.StringFixed(2), snap.TotalInterest.StringFixed(2))
	return nil
}

func (c *console) reset() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.sess = nil
	c.sorted = false
}

// readSecret reads without echo when stdin is a terminal.
func (c *console) readSecret(label string) (string, error) {
	fmt.Fprint(c.out, label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		bytes, err := term.ReadPassword(fd)
		fmt.Fprintln(c.out)
		if err != nil {
			return "", err
		}
		return string(bytes), nil
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
