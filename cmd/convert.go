// Package cmd — convert command.
// Converts an already-downloaded PDF into the three derived artifacts.
// With no argument it converts the document the latest pointer names.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"planpipe/core"
	"planpipe/core/pipeline"
	"planpipe/core/store"
)

var convertCmd = &cobra.Command{
	Use:   "convert [pdf]",
	Short: "Convert a study-plan PDF to text, XML and structured XML",
	Long: `Convert extracts text from the given PDF and writes the three derived
artifacts (.txt, .xml, .structured.xml) into the processed directory.
Without an argument, the PDF referenced by the latest pointer is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.New(cfg.DataDir)
	if err != nil {
		return err
	}

	var pdfPath string
	if len(args) == 1 {
		pdfPath = args[0]
	} else {
		pdfPath, err = st.ReadLatest()
		if err != nil {
			return fmt.Errorf("no PDF given and no latest pointer: %w", err)
		}
	}
	if _, err := os.Stat(pdfPath); err != nil {
		return fmt.Errorf("source PDF %s: %w", pdfPath, err)
	}

	_, set, err := pipeline.New(st).Convert(pdfPath)
	if err != nil {
		return err
	}

	for _, kind := range []core.Kind{core.KindText, core.KindXML, core.KindStructured} {
		path, _ := set.ByKind(kind)
		fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	}
	return nil
}
