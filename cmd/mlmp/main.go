// mlmp extracts dish-name candidates from OCR page dumps of restaurant
// menus, manages the local entree dictionary, and exports labeled feedback.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mlmp",
	Short: "Menu dish-name extraction toolkit",
	Long: `mlmp runs the menu extraction core from the command line.

Page dumps are JSON files produced by the OCR collaborator: an array of
pages, each an ordered list of recognized lines with boxes and confidences.

Examples:
  mlmp extract menu.json                  # ranked candidates, text output
  mlmp extract menu.json --json           # machine-readable output
  mlmp dict init dict.db                  # create the local dictionary
  mlmp dict load dict.db entrees.json     # load known dish names
  mlmp dict lookup dict.db "grilled salmon"
  mlmp export --out labels.xlsx           # labeled feedback as a workbook
  mlmp weights                            # show the trainer's current weights`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
