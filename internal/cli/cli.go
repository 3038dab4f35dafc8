// Package cli implements inventoryctl, a terminal front end over the same
// services the HTTP server uses.
package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	apperrors "miniinventory/internal/errors"
	"miniinventory/internal/export"
	"miniinventory/internal/model"
	"miniinventory/internal/service"
)

// NewRootCommand builds the command tree over the given services.
func NewRootCommand(inventory service.InventoryService, auth service.AuthService) *cobra.Command {
	root := &cobra.Command{
		Use:   "inventoryctl",
		Short: "Manage the product inventory from the terminal",
		Long: `Manage the product inventory from the terminal.

The store is selected with the same environment variables as the server
(DB_DRIVER, SQLITE_PATH, MYSQL_DSN, POSTGRES_DSN).

Examples:
  inventoryctl login --username admin --password admin123
  inventoryctl add --name "Widget A" --category Tools --quantity 10 --price 2.50
  inventoryctl list --search Wid
  inventoryctl update 1 "Widget A2" Tools 3 4.75
  inventoryctl export --format xlsx --output stock.xlsx`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newLoginCommand(auth),
		newListCommand(inventory),
		newShowCommand(inventory),
		newAddCommand(inventory),
		newUpdateCommand(inventory),
		newDeleteCommand(inventory),
		newDashboardCommand(inventory),
		newExportCommand(inventory),
	)
	return root
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid product id %q", apperrors.ErrValidation, s)
	}
	return uint(id), nil
}

func parseQuantity(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	qty, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: quantity %q is not a whole number", apperrors.ErrValidation, s)
	}
	return qty, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	price, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price %q is not a number", apperrors.ErrValidation, s)
	}
	return price.Round(2), nil
}

func productInput(name, category, quantity, price string) (model.ProductInput, error) {
	qty, err := parseQuantity(quantity)
	if err != nil {
		return model.ProductInput{}, err
	}
	p, err := parsePrice(price)
	if err != nil {
		return model.ProductInput{}, err
	}
	return model.ProductInput{Name: name, Category: category, Quantity: qty, Price: p}, nil
}

func printProducts(w io.Writer, products []model.Product) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(export.Header, "\t"))
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			p.ID, p.Name, p.Category, p.Quantity, p.Price.StringFixed(2), p.AddedOn.Format(export.TimeLayout))
	}
	return tw.Flush()
}
