package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"backoffice/internal/adapters/snapshot"
	"backoffice/internal/modkit/module"
	perr "backoffice/internal/platform/errors"
	pstrings "backoffice/internal/platform/strings"
	"backoffice/internal/services/brands/domain"
	brandsmod "backoffice/internal/services/brands/module"
)

var (
	brandsKeyword  string
	brandsCategory string
	brandsStatus   string

	brandName        string
	brandSlug        string
	brandDescription string
	brandCategory    string
	brandStatus      string
	brandLogoURL     string
)

var brandsCmd = &cobra.Command{
	Use:   "brands",
	Short: "Manage product brands",
}

var brandsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List brands",
	RunE:  runBrandsList,
}

var brandsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch one brand by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrandsGet,
}

var brandsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a brand",
	RunE:  runBrandsCreate,
}

var brandsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a brand",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrandsUpdate,
}

var brandsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a brand",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrandsDelete,
}

var brandsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Batch import brands from a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrandsImport,
}

var brandsExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the brand collection to a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrandsExport,
}

func init() {
	brandsListCmd.Flags().StringVar(&brandsKeyword, "keyword", "", "case-insensitive keyword over name, slug, description")
	brandsListCmd.Flags().StringVar(&brandsCategory, "category", "", "filter by category")
	brandsListCmd.Flags().StringVar(&brandsStatus, "status", "", "filter by status (active, archived)")

	for _, c := range []*cobra.Command{brandsCreateCmd, brandsUpdateCmd} {
		c.Flags().StringVar(&brandName, "name", "", "brand name")
		c.Flags().StringVar(&brandSlug, "slug", "", "url slug")
		c.Flags().StringVar(&brandDescription, "description", "", "free-text description")
		c.Flags().StringVar(&brandCategory, "category", "", "category")
		c.Flags().StringVar(&brandStatus, "status", "active", "status (active, archived)")
		c.Flags().StringVar(&brandLogoURL, "logo-url", "", "logo URL")
	}

	brandsCmd.AddCommand(brandsListCmd, brandsGetCmd, brandsCreateCmd,
		brandsUpdateCmd, brandsDeleteCmd, brandsImportCmd, brandsExportCmd)
}

// brandsStore fetches the brands store port from the module registry
func brandsStore() (domain.StorePort, error) {
	ports, ok := module.PortsAs[brandsmod.Ports]("brands")
	if !ok {
		return nil, fmt.Errorf("brands module not registered")
	}
	return ports.Store, nil
}

func runBrandsList(cmd *cobra.Command, args []string) error {
	store, err := brandsStore()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := store.SetFilters(ctx, map[string]string{"category": brandsCategory, "status": brandsStatus}); err != nil {
		return err
	}
	if err := store.SetSearchKeyword(ctx, pstrings.EmptyToNil(brandsKeyword)); err != nil {
		return err
	}
	brands := store.FilteredList()
	if flagJSON {
		return emitJSON(brands)
	}
	printBrandTable(brands)
	return nil
}

func runBrandsGet(cmd *cobra.Command, args []string) error {
	store, err := brandsStore()
	if err != nil {
		return err
	}
	b, err := store.GetByID(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return emitJSON(b)
}

func runBrandsCreate(cmd *cobra.Command, args []string) error {
	store, err := brandsStore()
	if err != nil {
		return err
	}
	b := domain.Brand{
		Name:        brandName,
		Slug:        brandSlug,
		Description: brandDescription,
		Category:    brandCategory,
		Status:      brandStatus,
		LogoURL:     brandLogoURL,
	}
	if err := store.Create(cmd.Context(), b); err != nil {
		return describeFailure(err)
	}
	return nil
}

func runBrandsUpdate(cmd *cobra.Command, args []string) error {
	store, err := brandsStore()
	if err != nil {
		return err
	}
	b := domain.Brand{
		Name:        brandName,
		Slug:        brandSlug,
		Description: brandDescription,
		Category:    brandCategory,
		Status:      brandStatus,
		LogoURL:     brandLogoURL,
	}
	if err := store.Update(cmd.Context(), args[0], b); err != nil {
		return describeFailure(err)
	}
	return nil
}

func runBrandsDelete(cmd *cobra.Command, args []string) error {
	store, err := brandsStore()
	if err != nil {
		return err
	}
	if err := store.Delete(cmd.Context(), args[0]); err != nil {
		return describeFailure(err)
	}
	return nil
}

func runBrandsImport(cmd *cobra.Command, args []string) error {
	store, err := brandsStore()
	if err != nil {
		return err
	}
	rows, err := snapshot.Load[domain.Brand](args[0], "brands")
	if err != nil {
		return err
	}
	report, err := store.BatchImport(cmd.Context(), rows)
	if err != nil && !perr.IsCanceled(err) {
		if report.Total > 0 {
			_ = emitJSON(report)
		}
		return describeFailure(err)
	}
	return emitJSON(report)
}

func runBrandsExport(cmd *cobra.Command, args []string) error {
	store, err := brandsStore()
	if err != nil {
		return err
	}
	if err := store.FetchList(cmd.Context()); err != nil {
		return describeFailure(err)
	}
	return snapshot.Save(args[0], "brands", store.Items())
}

func printBrandTable(brands []domain.Brand) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSTATUS")
	for _, b := range brands {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.ID, b.Name, b.Category, b.Status)
	}
	_ = w.Flush()
}
