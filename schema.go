package litepage

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SchemaEntry is a single row of the schema table stored on page 1.
type SchemaEntry struct {
	RowID     int64
	Type      string // table, index, view or trigger
	Name      string
	TableName string
	RootPage  int64
	SQL       string
}

// Schema decodes the schema table. Only schemas which fit on page 1 are
// supported, ErrMultiPageSchema is returned otherwise.
func (r *Reader) Schema() ([]SchemaEntry, error) {
	node, err := r.Node(1)
	if err != nil {
		return nil, err
	}
	if node.Type != TableLeaf {
		return nil, errors.Wrapf(ErrMultiPageSchema, "page 1 is a %s page", node.Type)
	}

	rows, err := r.Rows(1)
	if err != nil {
		return nil, err
	}

	entries := make([]SchemaEntry, 0, len(rows))
	for _, row := range rows {
		if row.Err != nil {
			continue
		}

		ent, err := schemaEntry(row)
		if err != nil {
			r.o.Logger.Debug("skipped schema row", zap.Int64("rowid", row.RowID), zap.Error(err))
			continue
		}
		entries = append(entries, ent)
	}
	return entries, nil
}

func schemaEntry(row Row) (SchemaEntry, error) {
	ent := SchemaEntry{RowID: row.RowID}
	if len(row.Values) != 5 {
		return ent, errors.Errorf("litepage: schema row has %d columns", len(row.Values))
	}

	var ok bool
	if ent.Type, ok = row.Values[0].(string); !ok {
		return ent, errors.Errorf("litepage: schema type is %T", row.Values[0])
	}
	if ent.Name, ok = row.Values[1].(string); !ok {
		return ent, errors.Errorf("litepage: schema name is %T", row.Values[1])
	}
	if ent.TableName, ok = row.Values[2].(string); !ok {
		return ent, errors.Errorf("litepage: schema tbl_name is %T", row.Values[2])
	}

	switch v := row.Values[3].(type) {
	case int64:
		ent.RootPage = v
	case nil:
	default:
		return ent, errors.Errorf("litepage: schema rootpage is %T", v)
	}

	switch v := row.Values[4].(type) {
	case string:
		ent.SQL = v
	case nil:
	default:
		return ent, errors.Errorf("litepage: schema sql is %T", v)
	}
	return ent, nil
}
