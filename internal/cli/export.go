package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/eoralabs/aura-memory/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export atoms as JSON lines",
		Run:   runExport,
	}
	exportCmd.Flags().StringP("user", "u", "", "Only export this user's atoms")
	RootCmd.AddCommand(exportCmd)

	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import atoms from a JSON lines export",
		Run:   runImport,
	}
	RootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	user, _ := cmd.Flags().GetString("user")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	atoms, err := s.ExportAll(cmd.Context(), user)
	if err != nil {
		exitErr("export", err)
	}

	enc := json.NewEncoder(os.Stdout)
	for _, a := range atoms {
		enc.Encode(a)
	}
}

func runImport(cmd *cobra.Command, args []string) {
	in := os.Stdin
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			exitErr("open import file", err)
		}
		defer f.Close()
		in = f
	}

	var atoms []model.Atom
	dec := json.NewDecoder(in)
	for dec.More() {
		var a model.Atom
		if err := dec.Decode(&a); err != nil {
			exitErr("decode import", err)
		}
		atoms = append(atoms, a)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	n, err := s.Import(cmd.Context(), atoms)
	if err != nil {
		exitErr("import", err)
	}
	fmt.Printf("imported %d atoms\n", n)
}
