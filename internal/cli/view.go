package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/dkcards/internal/models"
	"github.com/dmitrijs2005/dkcards/internal/navigation"
)

// terminalView draws screens and notices as styled text. It implements
// navigation.Renderer and navigation.Notifier.
type terminalView struct {
	out io.Writer

	title   lipgloss.Style
	subtle  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	card    lipgloss.Style
}

func newTerminalView(out io.Writer) *terminalView {
	r := lipgloss.NewRenderer(out)
	return &terminalView{
		out:     out,
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		subtle:  r.NewStyle().Foreground(lipgloss.Color("241")),
		success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		failure: r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		card:    r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

func (v *terminalView) Notify(_ context.Context, n navigation.Notice) {
	if n.Kind == navigation.NoticeError {
		fmt.Fprintln(v.out, v.failure.Render("✗ "+n.Text))
		return
	}
	fmt.Fprintln(v.out, v.success.Render("✓ "+n.Text))
}

func (v *terminalView) Render(_ context.Context, screen navigation.Screen, vm navigation.ViewModel) error {
	var b strings.Builder

	b.WriteString(v.title.Render("DK - Card's · "+screen.String()) + "\n")

	switch screen {
	case navigation.Login:
		b.WriteString(v.subtle.Render("Log in with 'login' or create an account with 'register'.") + "\n")

	case navigation.Register:
		b.WriteString(v.subtle.Render("Fill in name, email and password.") + "\n")
		v.writeFieldErrors(&b, vm.FieldErrors)

	case navigation.Home:
		if vm.User != nil {
			b.WriteString("Welcome, " + vm.User.Email + "\n")
		}
		if vm.Primary == nil {
			b.WriteString(v.subtle.Render("No cards yet. Use 'new' to add one.") + "\n")
			break
		}
		b.WriteString(v.renderCard(*vm.Primary) + "\n")
		v.writeActivity(&b, vm.Activity)

	case navigation.CardList:
		if len(vm.Cards) == 0 {
			b.WriteString(v.subtle.Render("No cards yet. Use 'new' to add one.") + "\n")
			break
		}
		b.WriteString(cardTable(vm.Cards) + "\n")

	case navigation.NewCard:
		b.WriteString(v.subtle.Render("Fill in owner name, tax id, number, expiry and security code.") + "\n")
		v.writeFieldErrors(&b, vm.FieldErrors)
	}

	_, err := io.WriteString(v.out, b.String())
	return err
}

func (v *terminalView) renderCard(c models.Card) string {
	body := strings.Join([]string{
		c.OwnerName,
		MaskNumber(c.Number),
		v.subtle.Render("valid thru " + c.Expiry),
	}, "\n")
	return v.card.Render(body)
}

func (v *terminalView) writeActivity(b *strings.Builder, txs []models.Transaction) {
	if len(txs) == 0 {
		return
	}
	b.WriteString("Recent activity:\n")
	for _, tx := range txs {
		fmt.Fprintf(b, "  %s  %-24s %s\n", tx.Date.Format("2006-01-02"), tx.Description, formatAmount(tx.Amount))
	}
}

func (v *terminalView) writeFieldErrors(b *strings.Builder, fields []string) {
	for _, f := range fields {
		b.WriteString(v.failure.Render("  • "+f+" is required") + "\n")
	}
}

func cardTable(cards []models.Card) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "OWNER", "NUMBER", "EXPIRY")
	for _, c := range cards {
		t.Row(strconv.FormatInt(c.ID, 10), c.OwnerName, MaskNumber(c.Number), c.Expiry)
	}
	return t.String()
}

// MaskNumber hides all but the last four digits of a card number.
func MaskNumber(number string) string {
	var digits []rune
	for _, r := range number {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	if len(digits) <= 4 {
		return "****"
	}
	return "**** " + string(digits[len(digits)-4:])
}

// formatAmount renders minor units as a signed decimal with two places.
func formatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
