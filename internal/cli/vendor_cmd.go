package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daileit/wedding-planner/internal/catalog"
	"github.com/daileit/wedding-planner/internal/encoding"
)

// tagSeparator splits the category_tags cell.
const tagSeparator = "|"

var vendorColumns = []string{
	"name", "website", "affiliate_link", "category_tags", "location", "rating", "logo_url", "is_verified",
}

func newVendorsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendors",
		Short: "Manage the shared vendor catalog",
	}

	cmd.AddCommand(newVendorsSeedCmd(app))

	return cmd
}

func newVendorsSeedCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "seed FILE",
		Short: "Upsert catalog vendors from a CSV file",
		Long: "Upsert catalog vendors from a CSV file with a header row.\n" +
			"Columns: " + strings.Join(vendorColumns, ", ") + ".\n" +
			"Only name is required. Separate category tags with " + tagSeparator + ".",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			params, err := ParseVendorCSV(f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Parsed %d vendors, nothing written.\n", len(params))
				return nil
			}

			n, err := app.Vendors.Seed(cmd.Context(), params)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d vendors.\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse the file without writing")

	return cmd
}

// ParseVendorCSV reads catalog rows keyed by the header row. Unknown columns
// are ignored and empty cells leave the field unset.
func ParseVendorCSV(r io.Reader) ([]catalog.SeedParams, error) {
	utf8Reader, _, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(utf8Reader)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("file is empty")
		}

		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	if _, ok := cols["name"]; !ok {
		return nil, errors.New("header has no name column")
	}

	var out []catalog.SeedParams

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		line, _ := cr.FieldPos(0)

		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}

			return strings.TrimSpace(record[i])
		}

		optional := func(name string) *string {
			if v := cell(name); v != "" {
				return &v
			}

			return nil
		}

		p := catalog.SeedParams{
			Name:          cell("name"),
			Website:       optional("website"),
			AffiliateLink: optional("affiliate_link"),
			Location:      optional("location"),
			Rating:        optional("rating"),
			LogoURL:       optional("logo_url"),
		}

		if p.Name == "" && strings.TrimSpace(strings.Join(record, "")) == "" {
			continue
		}

		for tag := range strings.SplitSeq(cell("category_tags"), tagSeparator) {
			if tag = strings.TrimSpace(tag); tag != "" {
				p.CategoryTags = append(p.CategoryTags, tag)
			}
		}

		if v := cell("is_verified"); v != "" {
			p.IsVerified, err = strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("line %d: is_verified must be true or false", line)
			}
		}

		out = append(out, p)
	}

	if len(out) == 0 {
		return nil, errors.New("file contains no vendors")
	}

	return out, nil
}
