// Command litepage inspects SQLite database files page by page.
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/bsm/litepage"
	"go.uber.org/zap"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Globals are flags shared by all commands.
type Globals struct {
	LogLevel   string `name:"log-level" default:"warn" env:"LITEPAGE_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`
	LogFormat  string `name:"log-format" default:"console" enum:"console,json" env:"LITEPAGE_LOG_FORMAT" help:"Log format (console, json)"`
	CachePages int64  `name:"cache-pages" default:"64" env:"LITEPAGE_CACHE_PAGES" help:"Number of pages to cache, 0 disables caching"`
}

// open opens a database file with the global options applied.
func (g *Globals) open(name string) (*litepage.File, *zap.Logger, error) {
	logger := newLogger(g.LogLevel, g.LogFormat)

	f, err := litepage.Open(name, &litepage.Options{
		CacheSize: g.CachePages,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("open failed", zap.String("file", name), zap.Error(err))
		_ = logger.Sync()
		return nil, nil, err
	}
	return f, logger, nil
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Header HeaderCmd `cmd:"" help:"Print the file header"`
	Page   PageCmd   `cmd:"" help:"Print a page header and its cells"`
	Rows   RowsCmd   `cmd:"" help:"Print the rows stored on a table-leaf page"`
	Schema SchemaCmd `cmd:"" help:"Print the schema table"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("litepage"),
		kong.Description("Read-only SQLite page inspector"),
		kong.UsageOnError(),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
