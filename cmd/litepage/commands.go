package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bsm/litepage"
	"github.com/dustin/go-humanize"
)

// HeaderCmd prints the file header.
type HeaderCmd struct {
	File string `arg:"" type:"existingfile" help:"Database file"`
}

func (c *HeaderCmd) Run(g *Globals) error {
	f, logger, err := g.open(c.File)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer f.Close()

	return printHeader(stdout, f.Header(), f.NumPages())
}

// PageCmd prints a page header and its cells.
type PageCmd struct {
	File string `arg:"" type:"existingfile" help:"Database file"`
	Page uint32 `arg:"" help:"Page number, starting at 1"`
}

func (c *PageCmd) Run(g *Globals) error {
	f, logger, err := g.open(c.File)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer f.Close()

	node, err := f.Node(c.Page)
	if err != nil {
		return err
	}
	return printNode(stdout, node)
}

// RowsCmd prints the rows stored on a table-leaf page.
type RowsCmd struct {
	File string `arg:"" type:"existingfile" help:"Database file"`
	Page uint32 `arg:"" help:"Page number, starting at 1"`
}

func (c *RowsCmd) Run(g *Globals) error {
	f, logger, err := g.open(c.File)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer f.Close()

	rows, err := f.Rows(c.Page)
	if err != nil {
		return err
	}
	return printRows(stdout, rows)
}

// SchemaCmd prints the schema table.
type SchemaCmd struct {
	File string `arg:"" type:"existingfile" help:"Database file"`
}

func (c *SchemaCmd) Run(g *Globals) error {
	f, logger, err := g.open(c.File)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer f.Close()

	entries, err := f.Schema()
	if err != nil {
		return err
	}
	return printSchema(stdout, entries)
}

// --------------------------------------------------------------------

func printHeader(w io.Writer, h *litepage.FileHeader, numPages int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "page size\t%d (%s)\n", h.PageSize, humanize.IBytes(uint64(h.PageSize)))
	fmt.Fprintf(tw, "database size\t%d pages (%s)\n", numPages, humanize.IBytes(uint64(numPages)*uint64(h.PageSize)))
	fmt.Fprintf(tw, "write version\t%s\n", h.WriteVersion)
	fmt.Fprintf(tw, "read version\t%s\n", h.ReadVersion)
	fmt.Fprintf(tw, "reserved space\t%d\n", h.ReservedSpace)
	fmt.Fprintf(tw, "payload fractions\t%d/%d/%d\n", h.MaxPayloadFraction, h.MinPayloadFraction, h.LeafPayloadFraction)
	fmt.Fprintf(tw, "change counter\t%s\n", humanize.Comma(int64(h.ChangeCounter)))
	fmt.Fprintf(tw, "first freelist trunk\t%d\n", h.FirstFreelistTrunk)
	fmt.Fprintf(tw, "freelist pages\t%d\n", h.FreelistPages)
	fmt.Fprintf(tw, "schema cookie\t%d\n", h.SchemaCookie)
	fmt.Fprintf(tw, "schema format\t%d\n", h.SchemaFormat)
	fmt.Fprintf(tw, "default cache size\t%d\n", h.DefaultCacheSize)
	fmt.Fprintf(tw, "largest root page\t%d\n", h.LargestRootPage)
	fmt.Fprintf(tw, "text encoding\t%s\n", h.TextEncoding)
	fmt.Fprintf(tw, "user version\t%d\n", h.UserVersion)
	fmt.Fprintf(tw, "vacuum mode\t%d\n", h.VacuumMode)
	fmt.Fprintf(tw, "application id\t%#x\n", h.ApplicationID)
	fmt.Fprintf(tw, "version valid for\t%d\n", h.VersionValidFor)
	fmt.Fprintf(tw, "version\t%s\n", h.Version)
	return tw.Flush()
}

func printNode(w io.Writer, n *litepage.Node) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "type\t%s\n", n.Type)
	fmt.Fprintf(tw, "first freeblock\t%d\n", n.FirstFreeblock)
	fmt.Fprintf(tw, "cells\t%d\n", n.NumCells)
	fmt.Fprintf(tw, "cell content offset\t%d\n", n.CellOffset)
	fmt.Fprintf(tw, "fragmented bytes\t%d\n", n.FragmentedBytes)
	if n.HasRightChild() {
		fmt.Fprintf(tw, "right child\t%d\n", n.RightChild)
	}
	fmt.Fprintf(tw, "cell pointers\t%v\n", n.Pointers)
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, c := range n.Cells {
		fmt.Fprintf(w, "\ncell @%d\n", c.Offset)
		if c.Err != nil {
			fmt.Fprintf(w, "  error: %v\n", c.Err)
			continue
		}
		fmt.Fprintf(w, "  row id: %d\n", c.RowID)
		fmt.Fprintf(w, "  payload size: %d\n", c.PayloadSize)
		fmt.Fprintf(w, "  payload: %s\n", hex.EncodeToString(c.Payload))
		fmt.Fprintf(w, "  cursor end: %d\n", c.End)
	}
	for _, c := range n.Children {
		fmt.Fprintf(w, "\nchild @%d\n", c.Offset)
		if c.Err != nil {
			fmt.Fprintf(w, "  error: %v\n", c.Err)
			continue
		}
		fmt.Fprintf(w, "  page: %d\n", c.ChildPage)
		fmt.Fprintf(w, "  key: %d\n", c.RowID)
	}
	return nil
}

func printRows(w io.Writer, rows []litepage.Row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		if row.Err != nil {
			fmt.Fprintf(tw, "%d\terror: %v\n", row.RowID, row.Err)
			continue
		}

		fmt.Fprintf(tw, "%d", row.RowID)
		for _, v := range row.Values {
			fmt.Fprintf(tw, "\t%s", formatValue(v))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func printSchema(w io.Writer, entries []litepage.SchemaEntry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "type\tname\ttable\troot\tsql")
	for _, ent := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", ent.Type, ent.Name, ent.TableName, ent.RootPage, ent.SQL)
	}
	return tw.Flush()
}

func formatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return "x'" + hex.EncodeToString(x) + "'"
	case string:
		return fmt.Sprintf("%q", x)
	}
	return fmt.Sprint(v)
}
