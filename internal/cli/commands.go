package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	apperrors "miniinventory/internal/errors"
	"miniinventory/internal/export"
	"miniinventory/internal/model"
	"miniinventory/internal/service"
)

const (
	usernameFlag = "username"
	passwordFlag = "password"
)

func newLoginCommand(auth service.AuthService) *cobra.Command {
	flags := map[string]cobraflags.Flag{
		usernameFlag: &cobraflags.StringFlag{
			Name:  usernameFlag,
			Value: "",
			Usage: "Account name",
		},
		passwordFlag: &cobraflags.StringFlag{
			Name:  passwordFlag,
			Value: "",
			Usage: "Account password",
		},
	}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check a username and password against the credential store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			username := strings.TrimSpace(flags[usernameFlag].GetString())
			password := strings.TrimSpace(flags[passwordFlag].GetString())
			if username == "" || password == "" {
				return fmt.Errorf("%w: enter username and password", apperrors.ErrValidation)
			}

			ok, err := auth.Verify(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if !ok {
				return apperrors.ErrInvalidCredentials
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", username)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

const searchFlag = "search"

func newListCommand(inventory service.InventoryService) *cobra.Command {
	flags := map[string]cobraflags.Flag{
		searchFlag: &cobraflags.StringFlag{
			Name:  searchFlag,
			Value: "",
			Usage: "Only show products whose name or category contains this text (case-sensitive)",
		},
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := inventory.List(cmd.Context(), strings.TrimSpace(flags[searchFlag].GetString()))
			if err != nil {
				return err
			}
			if err := printProducts(cmd.OutOrStdout(), products); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d product(s)\n", len(products))
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newShowCommand(inventory service.InventoryService) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			product, err := inventory.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printProducts(cmd.OutOrStdout(), []model.Product{*product})
		},
	}
}

const (
	nameFlag     = "name"
	categoryFlag = "category"
	quantityFlag = "quantity"
	priceFlag    = "price"
)

func newAddCommand(inventory service.InventoryService) *cobra.Command {
	flags := map[string]cobraflags.Flag{
		nameFlag: &cobraflags.StringFlag{
			Name:  nameFlag,
			Value: "",
			Usage: "Product name (required)",
		},
		categoryFlag: &cobraflags.StringFlag{
			Name:  categoryFlag,
			Value: "",
			Usage: "Category; empty is shown as Uncategorized on the dashboard",
		},
		quantityFlag: &cobraflags.StringFlag{
			Name:  quantityFlag,
			Value: "0",
			Usage: "Units in stock",
		},
		priceFlag: &cobraflags.StringFlag{
			Name:  priceFlag,
			Value: "0",
			Usage: "Unit price, rounded to 2 decimals",
		},
	}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := productInput(
				flags[nameFlag].GetString(),
				flags[categoryFlag].GetString(),
				flags[quantityFlag].GetString(),
				flags[priceFlag].GetString(),
			)
			if err != nil {
				return err
			}
			product, err := inventory.Insert(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added product %d\n", product.ID)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newUpdateCommand(inventory service.InventoryService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID NAME CATEGORY QUANTITY PRICE",
		Short: "Replace the editable fields of a product",
		Long: `Replace name, category, quantity and price of a product.
Pass "" as CATEGORY to clear it. The Added On timestamp is kept.
Everything after ID is read as a value, so a leading "-" is not taken as a flag.`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			input, err := productInput(args[1], args[2], args[3], args[4])
			if err != nil {
				return err
			}
			if err := inventory.Update(cmd.Context(), id, input); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated product %d\n", id)
			return nil
		},
	}
	// Flag parsing stops at ID; QUANTITY and PRICE may look like "-1".
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newDeleteCommand(inventory service.InventoryService) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := inventory.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted product %d\n", id)
			return nil
		},
	}
}

func newDashboardCommand(inventory service.InventoryService) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show inventory totals and the top categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := inventory.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total products: %d\n", d.TotalProducts)
			fmt.Fprintf(out, "Total quantity: %d\n", d.TotalQuantity)
			fmt.Fprintf(out, "Total value:    %s\n", d.TotalValue.StringFixed(2))
			if len(d.TopCategories) == 0 {
				return nil
			}
			fmt.Fprintln(out, "Top categories:")
			for _, c := range d.TopCategories {
				fmt.Fprintf(out, "  %-24s %d\n", c.Category, c.Count)
			}
			return nil
		},
	}
}

const (
	formatFlag = "format"
	outputFlag = "output"
	filterFlag = "filter"
)

func newExportCommand(inventory service.InventoryService) *cobra.Command {
	flags := map[string]cobraflags.Flag{
		formatFlag: &cobraflags.StringFlag{
			Name:  formatFlag,
			Value: string(export.FormatCSV),
			Usage: "csv or xlsx",
		},
		outputFlag: &cobraflags.StringFlag{
			Name:  outputFlag,
			Value: "",
			Usage: "Destination file (default inventory_export_<timestamp>.<format>)",
		},
		filterFlag: &cobraflags.StringFlag{
			Name:  filterFlag,
			Value: "",
			Usage: "Only export products whose name or category contains this text",
		},
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the product list to a CSV or XLSX file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := export.ParseFormat(flags[formatFlag].GetString())
			if err != nil {
				return err
			}
			path := flags[outputFlag].GetString()
			if path == "" {
				path = export.Filename(format, time.Now())
			}

			n, err := inventory.ExportFile(cmd.Context(), path, format, strings.TrimSpace(flags[filterFlag].GetString()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d product(s) to %s\n", n, path)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}
