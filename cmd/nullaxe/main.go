package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nullaxe",
		Short: "Infer column types of tabular data",
		Long: `nullaxe reads CSV, TSV, JSON or LDJSON data and recasts each column to the
first type that fits its values: datetime, numeric, boolean, then category.
The result can be printed as a profile, written back out, or loaded into Postgres.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(); err != nil {
				return err
			}
			return setupLogging()
		},
	}

	pf := rootCmd.PersistentFlags()

	pf.String("config", "", "Configuration file path")
	pf.String("log-level", "info", "Logging level (debug, info, warn, error)")
	pf.String("log-format", "text", "Log format (text, json)")

	pf.Float64("numeric-threshold", 0.6, "Fraction of non-null values that must parse as numbers")
	pf.Float64("datetime-threshold", 0.6, "Fraction of non-null values that must parse as dates")
	pf.Float64("category-unique-ratio", 0.05, "Maximum distinct/non-null ratio for category columns")
	pf.Bool("preserve-leading-zeros", false, "Keep integer-like columns with leading zeros as text")
	pf.Int("workers", 1, "Number of columns to infer concurrently")
	pf.StringSlice("subset", nil, "Columns to infer (default all)")

	pf.String("format", "", "Input format (csv, tsv, json, ldjson); detected from the file name")
	pf.String("compression", "", "Input compression (gzip, bzip2); detected from the file name")
	pf.String("csv-delim", "", "CSV delimiter (default comma, tab for tsv)")
	pf.Bool("csv-noheader", false, "No CSV header present")

	for _, k := range []string{
		"config",
		"log-level",
		"log-format",
		"numeric-threshold",
		"datetime-threshold",
		"category-unique-ratio",
		"preserve-leading-zeros",
		"workers",
		"subset",
		"format",
		"compression",
		"csv-delim",
		"csv-noheader",
	} {
		viper.BindPFlag(viperKey(k), pf.Lookup(k))
	}

	inferCmd := &cobra.Command{
		Use:   "infer [file]",
		Short: "Infer column types and print a profile or the typed data",
		Long: `Infer column types of a file, or stdin when no file is given. By default a
JSON profile of the inferred columns is printed. Use --out csv or --out ldjson
to write the typed data instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInfer,
	}

	inferCmd.Flags().String("out", "profile", "Output (profile, csv, ldjson)")
	viper.BindPFlag("out", inferCmd.Flags().Lookup("out"))

	importCmd := &cobra.Command{
		Use:   "import <file|dir>",
		Short: "Infer column types and load files into Postgres",
		Long: `Infer column types and load a file into a Postgres table named after the
file. For a directory every file is loaded concurrently; the relative
sub-directory becomes the schema.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	ifl := importCmd.Flags()
	ifl.String("db", "", "Database URL")
	ifl.String("schema", "public", "Schema name")
	ifl.String("table", "", "Table name (default the file's base name)")
	ifl.Bool("append", false, "Append to table")
	ifl.Bool("cstore", false, "Use cstore table")
	ifl.Int("concurrency", 4, "Files loaded at once when importing a directory")

	for _, k := range []string{"db", "schema", "table", "append", "cstore", "concurrency"} {
		viper.BindPFlag(viperKey(k), ifl.Lookup(k))
	}

	rootCmd.AddCommand(inferCmd, importCmd)

	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
