package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/healthcheck/internal/output"
	"github.com/blackwell-systems/healthcheck/internal/project"
)

var vendorsFlagOrg string

var vendorsCmd = &cobra.Command{
	Use:   "vendors",
	Short: "List the vendors declared in project metadata",
	Long: `Vendors runs a check and tallies the vendor named in each project's
.opf.yml file. Projects without a readable metadata file are not counted.`,
	RunE: runVendors,
}

func init() {
	vendorsCmd.Flags().StringVar(&vendorsFlagOrg, "org", "", "Organisation or user to check (default from config)")
	rootCmd.AddCommand(vendorsCmd)
}

func runVendors(cmd *cobra.Command, args []string) error {
	s, err := newSession(vendorsFlagOrg)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	snap, err := s.asm.Run(ctx, s.cfg.Org)
	if err != nil {
		return err
	}
	vendors := project.Vendors(snap.Projects)

	out := cmd.OutOrStdout()
	if flagJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(vendors)
	}

	output.SetNoColor(flagNoColor || !output.ColorEnabled(out, s.cfg.Output.Color))
	fmt.Fprintln(out, output.Section("Vendors: "+s.cfg.Org))
	fmt.Fprintln(out)
	if len(vendors) == 0 {
		fmt.Fprintln(out, output.StyleMuted.Render(" No project declares a vendor."))
		return nil
	}

	tbl := output.NewTable("Vendor", "Projects")
	for _, v := range vendors {
		tbl.AddRow(v.Vendor, fmt.Sprintf("%d", v.Projects))
	}
	_, err = tbl.WriteTo(out)
	return err
}
