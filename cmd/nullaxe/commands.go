package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	nullaxe "github.com/JohnTocci/Nullaxe"
	"github.com/JohnTocci/Nullaxe/frame"
	"github.com/JohnTocci/Nullaxe/infer"
	"github.com/JohnTocci/Nullaxe/records"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func viperKey(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

// loadConfig reads the config file, if any, and NULLAXE_* variables.
func loadConfig() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errors.Wrap(err, "failed to read config file")
		}
	}

	viper.SetEnvPrefix("NULLAXE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	return nil
}

func setupLogging() error {
	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}

	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)

	switch viper.GetString("log_format") {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	default:
		return errors.Errorf("invalid log format: %s", viper.GetString("log_format"))
	}

	return nil
}

func inferConfig() (*infer.Config, error) {
	c := infer.DefaultConfig()
	c.NumericThreshold = viper.GetFloat64("numeric_threshold")
	c.DatetimeThreshold = viper.GetFloat64("datetime_threshold")
	c.CategoryUniqueRatio = viper.GetFloat64("category_unique_ratio")
	c.PreserveLeadingZeros = viper.GetBool("preserve_leading_zeros")
	c.Workers = viper.GetInt("workers")
	c.Logger = logrus.StandardLogger()

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func newRequest(path string) (*nullaxe.Request, error) {
	c, err := inferConfig()
	if err != nil {
		return nil, err
	}

	r := &nullaxe.Request{
		Path:        path,
		Format:      viper.GetString("format"),
		Compression: viper.GetString("compression"),
		Delimiter:   viper.GetString("csv_delim"),
		Header:      !viper.GetBool("csv_noheader"),
		Config:      c,
		Database:    viper.GetString("db"),
		Schema:      viper.GetString("schema"),
		Table:       viper.GetString("table"),
		AppendTable: viper.GetBool("append"),
		CStore:      viper.GetBool("cstore"),
	}

	if subset := viper.GetStringSlice("subset"); len(subset) > 0 {
		r.Subset = subset
	}

	return r, nil
}

func runInfer(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}

	r, err := newRequest(path)
	if err != nil {
		return err
	}

	data, err := nullaxe.Infer(r)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	switch viper.GetString("out") {
	case "profile":
		p, err := nullaxe.Profile(data)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(p)

	case "csv":
		f, err := nullaxe.ToFrame(data)
		if err != nil {
			return err
		}
		return frame.WriteCSV(out, f, ',')

	case "ldjson":
		s, ok := data.(*records.Set)
		if !ok {
			return errors.New("ldjson output requires json or ldjson input")
		}
		return records.Encode(out, s)
	}

	return errors.Errorf("unknown output: %s", viper.GetString("out"))
}

func runImport(cmd *cobra.Command, args []string) error {
	stat, err := os.Stat(args[0])
	if err != nil {
		return errors.Wrap(err, "stat input")
	}

	if !stat.IsDir() {
		r, err := newRequest(args[0])
		if err != nil {
			return err
		}

		_, err = nullaxe.Import(r)
		return err
	}

	return importDir(args[0])
}

// importDir loads every file below rootDir. The relative directory becomes
// the schema and the base name the table.
func importDir(rootDir string) error {
	p := pool.New().WithErrors().WithMaxGoroutines(max(1, viper.GetInt("concurrency")))

	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		rpath, _ := filepath.Rel(rootDir, path)
		dir, base := filepath.Split(rpath)

		r, err := newRequest(path)
		if err != nil {
			return err
		}

		r.Table = strings.Split(base, ".")[0]
		r.Schema = strings.Replace(strings.Trim(filepath.ToSlash(dir), "/"), "/", "_", -1)

		if r.Schema == "" {
			r.Schema = "public"
		}

		p.Go(func() error {
			logrus.WithFields(logrus.Fields{
				"file":   rpath,
				"schema": r.Schema,
				"table":  r.Table,
			}).Info("loading file")

			if _, err := nullaxe.Import(r); err != nil {
				return errors.Wrapf(err, "import %s", rpath)
			}

			return nil
		})

		return nil
	})

	if werr := p.Wait(); werr != nil {
		return werr
	}

	return err
}
