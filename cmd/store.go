package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/martinmajer/mechanika/internal/document"
	"github.com/martinmajer/mechanika/internal/store"
	"github.com/spf13/cobra"
)

var (
	storeName   string
	storeOutput string
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the model library",
	Long: `Save, list, show and delete models in the SQLite model library.

The database path is taken from MECHANIKA_DB (default data/mechanika.db).

Subcommands:
  save    - Store a model file
  list    - List stored models
  show    - Print or export a stored model
  delete  - Remove a stored model`,
}

var storeSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Store a model file",
	RunE:  runStoreSave,
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored models",
	RunE:  runStoreList,
}

var storeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored model, or write it with -o",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreShow,
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a stored model",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreDelete,
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storeSaveCmd, storeListCmd, storeShowCmd, storeDeleteCmd)

	storeSaveCmd.Flags().StringVarP(&modelFile, "file", "f", "", "Model file (JSON)")
	storeSaveCmd.Flags().StringVarP(&storeName, "name", "n", "", "Model name (default: file name)")
	storeSaveCmd.MarkFlagRequired("file")

	storeShowCmd.Flags().StringVarP(&storeOutput, "output", "o", "", "Write the model to this file")
}

// openStore opens the configured library and makes sure its schema exists
func openStore(ctx context.Context) (*store.Store, func(), error) {
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	s := store.New(db)
	if err := s.Init(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return s, func() { db.Close() }, nil
}

func runStoreSave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	d, err := document.ReadFile(modelFile)
	if err != nil {
		return err
	}
	name := storeName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(modelFile), filepath.Ext(modelFile))
	}

	s, done, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer done()

	rec, err := s.Save(ctx, name, d)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %q as %s\n", rec.Name, rec.ID)
	return nil
}

func runStoreList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, done, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer done()

	list, err := s.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No stored models.")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  ID\tName\tVersion\tUpdated\n")
	for _, r := range list {
		fmt.Fprintf(w, "  %s\t%s\t%d\t%s\n", r.ID, r.Name, r.Version, r.UpdatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
	return nil
}

func runStoreShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, done, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer done()

	e, err := s.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if storeOutput != "" {
		if err := document.WriteFile(storeOutput, e.Document); err != nil {
			return err
		}
		fmt.Printf("Model %q written to %s\n", e.Name, storeOutput)
		return nil
	}
	data, err := document.Marshal(e.Document)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runStoreDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, done, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer done()

	if err := s.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}
