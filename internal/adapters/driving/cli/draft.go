package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opengrama/gramasurvey/internal/core/domain"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Work with the current survey draft",
	Long: `Inspect and edit the survey draft on this device.

The device holds one draft at a time. Fields are addressed by their
camelCase form keys, e.g.:

  # Household identity fields
  gramasurvey draft set headName "Chomi"
  gramasurvey draft set wardNumber 7

  # A field of a one-per-household section
  gramasurvey draft set --section housingDetails roofType tile

  # Repeatable sections: add a record, then fill it in
  gramasurvey draft add familyMembers
  gramasurvey draft set --section familyMembers --item 0 name "Velli"

  # Multi-select fields take comma-separated values
  gramasurvey draft set --section electricalFacilities bulbTypes "LED,CFL"`,
}

var draftShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current draft as JSON",
	RunE:  runDraftShow,
}

var draftSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Set a field of the current draft",
	Args:  cobra.ExactArgs(2),
	RunE:  runDraftSet,
}

var draftAddCmd = &cobra.Command{
	Use:   "add <section>",
	Short: "Add a record to a repeatable section",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftAdd,
}

var draftClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard the current draft",
	RunE:  runDraftClear,
}

// Flags for draft set.
var (
	draftSetSection string
	draftSetItem    int
)

func init() {
	draftSetCmd.Flags().StringVar(
		&draftSetSection, "section", "", "Section key (omit for household identity fields)")
	draftSetCmd.Flags().IntVar(
		&draftSetItem, "item", -1, "Record index within a repeatable section")

	draftCmd.AddCommand(draftShowCmd)
	draftCmd.AddCommand(draftSetCmd)
	draftCmd.AddCommand(draftAddCmd)
	draftCmd.AddCommand(draftClearCmd)
	rootCmd.AddCommand(draftCmd)
}

func runDraftShow(cmd *cobra.Command, _ []string) error {
	if captureService == nil {
		return errors.New("capture service not configured")
	}

	draft, err := captureService.Current(context.Background())
	if err != nil {
		return fmt.Errorf("load draft: %w", err)
	}

	out, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return fmt.Errorf("render draft: %w", err)
	}
	cmd.Println(string(out))
	return nil
}

func runDraftSet(cmd *cobra.Command, args []string) error {
	if captureService == nil {
		return errors.New("capture service not configured")
	}

	ctx := context.Background()
	field, raw := args[0], args[1]

	value, err := parseFieldValue(draftSetSection, field, raw)
	if err != nil {
		return err
	}

	if draftSetItem >= 0 {
		if draftSetSection == "" {
			return errors.New("--item requires --section")
		}
		if err := captureService.SetItemField(ctx, draftSetSection, draftSetItem, field, value); err != nil {
			return fmt.Errorf("set field: %w", err)
		}
		cmd.Printf("Set %s[%d].%s\n", draftSetSection, draftSetItem, field)
		return nil
	}

	if err := captureService.SetField(ctx, draftSetSection, field, value); err != nil {
		return fmt.Errorf("set field: %w", err)
	}
	if draftSetSection == "" {
		cmd.Printf("Set %s\n", field)
	} else {
		cmd.Printf("Set %s.%s\n", draftSetSection, field)
	}
	return nil
}

func runDraftAdd(cmd *cobra.Command, args []string) error {
	if captureService == nil {
		return errors.New("capture service not configured")
	}

	section := args[0]
	idx, err := captureService.AppendItem(context.Background(), section)
	if err != nil {
		return fmt.Errorf("add record: %w", err)
	}

	cmd.Printf("Added %s record at index %d\n", section, idx)
	return nil
}

func runDraftClear(cmd *cobra.Command, _ []string) error {
	if captureService == nil {
		return errors.New("capture service not configured")
	}

	if err := captureService.Reset(context.Background()); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}

	cmd.Println("Draft cleared.")
	return nil
}

// parseFieldValue converts a command-line string into the value type the
// field carries, using the section catalog. Unknown fields pass the raw
// string through; the capture service rejects them with a precise error.
func parseFieldValue(section, field, raw string) (any, error) {
	spec, ok := lookupField(section, field)
	if !ok {
		return raw, nil
	}

	switch spec.Kind {
	case domain.KindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s expects true or false, got %q", field, raw)
		}
		return v, nil
	case domain.KindInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s expects a whole number, got %q", field, raw)
		}
		return v, nil
	case domain.KindFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s expects a number, got %q", field, raw)
		}
		return v, nil
	case domain.KindStringList:
		parts := strings.Split(raw, ",")
		values := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				values = append(values, p)
			}
		}
		return values, nil
	default:
		return raw, nil
	}
}

func lookupField(section, field string) (domain.FieldSpec, bool) {
	if section == "" || section == "household" {
		return domain.IdentityField(field)
	}
	spec, ok := domain.SectionByKey(section)
	if !ok {
		return domain.FieldSpec{}, false
	}
	return spec.Field(field)
}
