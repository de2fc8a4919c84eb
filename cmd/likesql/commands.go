package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coregx/likesql"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	dialect string
	charset string
	collate string
	engine  string
	verbose bool
	strict  bool

	configFile string
	envFile    string
	settings   *viper.Viper
}

// databaseFlags select the active database for table DDL.
type databaseFlags struct {
	database    string
	mysqlDSN    string
	postgresURL string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "likesql",
		Short:         "Generate MySQL-family DDL statements",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd, flags); err != nil {
				return err
			}
			return flags.validateDialect()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.dialect, "dialect", "mysql", "statement dialect (mysql, mariadb, sqlite, rqlite)")
	pf.StringVar(&flags.charset, "charset", "", "default character set")
	pf.StringVar(&flags.collate, "collate", "", "default collation")
	pf.StringVar(&flags.engine, "engine", "", "default table engine")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log compiled statements to stderr")
	pf.BoolVar(&flags.strict, "strict", false, "reject identifiers with quote characters")
	pf.StringVar(&flags.configFile, "config", "", "config file (default ./.likesql.yaml)")
	pf.StringVar(&flags.envFile, "env-file", ".env", "load LIKESQL_* variables from this file if it exists")

	cmd.AddCommand(
		newCreateTableCmd(flags),
		newDropTableCmd(flags),
		newCreateDatabaseCmd(flags),
		newDropDatabaseCmd(flags),
	)
	return cmd
}

func (f *rootFlags) builder(cmd *cobra.Command, namer likesql.DatabaseNamer) *likesql.Builder {
	opts := []likesql.Option{
		likesql.WithDialect(f.dialect),
		likesql.WithConfig(likesql.Config{Charset: f.charset, Collate: f.collate, Engine: f.engine}),
	}
	if namer != nil {
		opts = append(opts, likesql.WithDatabase(namer))
	}
	if f.verbose {
		handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, likesql.WithLogger(likesql.NewSlogAdapter(slog.New(handler))))
	}
	if f.strict {
		opts = append(opts, likesql.WithValidator(likesql.NewValidator()))
	}
	return likesql.New(opts...)
}

func (f *rootFlags) validateDialect() error {
	if _, ok := likesql.LookupDialect(f.dialect); !ok {
		return fmt.Errorf("unknown dialect %q", f.dialect)
	}
	return nil
}

func (d *databaseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&d.database, "database", "d", "", "active database name")
	cmd.Flags().StringVar(&d.mysqlDSN, "mysql-dsn", "", "read the active database from a MySQL DSN")
	cmd.Flags().StringVar(&d.postgresURL, "postgres-url", "", "read the active database from a postgres connection string")
	cmd.MarkFlagsMutuallyExclusive("database", "mysql-dsn", "postgres-url")
}

// namer resolves the active database. An explicitly set flag wins; otherwise
// the merged environment and config values apply, then fallback.
func (d *databaseFlags) namer(cmd *cobra.Command, settings *viper.Viper, fallback string) (likesql.DatabaseNamer, error) {
	flags := cmd.Flags()
	switch {
	case flags.Changed("mysql-dsn"):
		return likesql.MySQLDatabase(d.mysqlDSN)
	case flags.Changed("postgres-url"):
		return likesql.PostgresDatabase(d.postgresURL)
	case flags.Changed("database"):
		return likesql.StaticDatabase(d.database), nil
	}

	database, mysqlDSN, postgresURL := d.database, d.mysqlDSN, d.postgresURL
	if settings != nil {
		database = settings.GetString("database")
		mysqlDSN = settings.GetString("mysql-dsn")
		postgresURL = settings.GetString("postgres-url")
	}

	switch {
	case mysqlDSN != "":
		return likesql.MySQLDatabase(mysqlDSN)
	case postgresURL != "":
		return likesql.PostgresDatabase(postgresURL)
	case database != "":
		return likesql.StaticDatabase(database), nil
	case fallback != "":
		return likesql.StaticDatabase(fallback), nil
	default:
		return nil, nil
	}
}

func newCreateTableCmd(flags *rootFlags) *cobra.Command {
	var (
		file string
		db   databaseFlags
	)

	cmd := &cobra.Command{
		Use:   "create-table -f schema.yaml",
		Short: "Print CREATE TABLE statements for a schema file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readSchema(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			s, err := parseSchema(data)
			if err != nil {
				return err
			}

			namer, err := db.namer(cmd, flags.settings, s.Database)
			if err != nil {
				return err
			}
			b := flags.builder(cmd, namer)

			for _, t := range s.Tables {
				opts := t.Options
				res, err := b.CreateTable(t.Name, t.Columns, &opts)
				if err != nil {
					return fmt.Errorf("table %s: %w", t.Name, err)
				}
				printStatement(cmd.OutOrStdout(), res)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "schema file, - for stdin")
	_ = cmd.MarkFlagRequired("file")
	db.register(cmd)
	return cmd
}

func newDropTableCmd(flags *rootFlags) *cobra.Command {
	var db databaseFlags

	cmd := &cobra.Command{
		Use:   "drop-table NAME...",
		Short: "Print DROP TABLE statements",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			namer, err := db.namer(cmd, flags.settings, "")
			if err != nil {
				return err
			}
			b := flags.builder(cmd, namer)

			for _, name := range args {
				res, err := b.DropTable(name)
				if err != nil {
					return err
				}
				printStatement(cmd.OutOrStdout(), res)
			}
			return nil
		},
	}

	db.register(cmd)
	return cmd
}

func newCreateDatabaseCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "create-database NAME",
		Short: "Print a CREATE DATABASE statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := flags.builder(cmd, nil).CreateDatabase(args[0], nil)
			if err != nil {
				return err
			}
			printStatement(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func newDropDatabaseCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "drop-database NAME",
		Short: "Print a DROP DATABASE statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := flags.builder(cmd, nil).DropDatabase(args[0])
			if err != nil {
				return err
			}
			printStatement(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func readSchema(stdin io.Reader, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return data, nil
}

// printStatement writes the statement terminated by a semicolon and a blank line.
func printStatement(w io.Writer, res any) {
	stmt := res.(*likesql.Statement)
	fmt.Fprintf(w, "%s;\n\n", strings.TrimSpace(stmt.SQL))
}
