package dab

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/ipld/go-ipld-prime"
	"github.com/ipld/go-ipld-prime/codec/json"
	"github.com/ipld/go-ipld-prime/datamodel"
	"github.com/tidwall/jsonc"
	"go.opentelemetry.io/otel/attribute"

	"github.com/arcator/cmdperms/cpapi"
	"github.com/arcator/cmdperms/pkg/tracing"
)

// DataKey is the key, in both input documents, holding the record list.
const DataKey = "data"

// CommandsFromFile loads every command record from a commands document.
//
// Errors:
//
//   - cmdperms-error-missing -- when the file does not exist.
//   - cmdperms-error-io -- for other errors reading from fsys.
//   - cmdperms-error-serialization -- when the file is not JSON (or JSONC).
//   - cmdperms-error-document-invalid -- when the envelope is not `{"data": [...]}`.
//   - cmdperms-error-record-invalid -- when a record is not 5 fields of string-or-null, or has a null name.
func CommandsFromFile(ctx context.Context, fsys fs.FS, filename string) (result []cpapi.CommandRecord, err error) {
	ctx, span := tracing.StartFn(ctx, "CommandsFromFile")
	defer func() { tracing.EndWithStatus(span, err) }()
	span.SetAttributes(attribute.String(tracing.AttrKeyCmdpermsInputPath, filename))

	err = eachRecord(ctx, fsys, filename, cpapi.CommandRecordArity, func(idx int64, fields []*string) error {
		if fields[1] == nil {
			return cpapi.ErrorRecordInvalid(filename, idx, "command name must not be null")
		}
		result = append(result, cpapi.CommandRecord{
			Platform:    fields[0],
			Name:        *fields[1],
			Aliases:     fields[2],
			Description: fields[3],
			HelpText:    fields[4],
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int(tracing.AttrKeyCmdpermsRecordCount, len(result)))
	return result, nil
}

// PermissionsFromFile loads every permission record from a permissions document.
//
// Errors:
//
//   - cmdperms-error-missing -- when the file does not exist.
//   - cmdperms-error-io -- for other errors reading from fsys.
//   - cmdperms-error-serialization -- when the file is not JSON (or JSONC).
//   - cmdperms-error-document-invalid -- when the envelope is not `{"data": [...]}`.
//   - cmdperms-error-record-invalid -- when a record is not 4 fields of string-or-null.
func PermissionsFromFile(ctx context.Context, fsys fs.FS, filename string) (result []cpapi.PermissionRecord, err error) {
	ctx, span := tracing.StartFn(ctx, "PermissionsFromFile")
	defer func() { tracing.EndWithStatus(span, err) }()
	span.SetAttributes(attribute.String(tracing.AttrKeyCmdpermsInputPath, filename))

	err = eachRecord(ctx, fsys, filename, cpapi.PermissionRecordArity, func(_ int64, fields []*string) error {
		result = append(result, cpapi.PermissionRecord{
			Platform:    fields[0],
			Command:     fields[1],
			Node:        fields[2],
			Description: fields[3],
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int(tracing.AttrKeyCmdpermsRecordCount, len(result)))
	return result, nil
}

// eachRecord reads and decodes filename, then calls fn once per record, in document order.
// The first error, from decoding or from fn, stops the iteration.
func eachRecord(ctx context.Context, fsys fs.FS, filename string, arity int64, fn func(idx int64, fields []*string) error) error {
	filename = strings.TrimPrefix(filename, "/")
	data, err := fs.ReadFile(fsys, filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cpapi.ErrorFileMissing(filename)
		}
		return cpapi.ErrorIo("reading input document", filename, err)
	}

	records, err := recordList(filename, data)
	if err != nil {
		return err
	}

	itr := records.ListIterator()
	for !itr.Done() {
		idx, rec, err := itr.Next()
		if err != nil {
			return cpapi.ErrorInternal("iterating records", err)
		}
		fields, reason := recordFields(rec, arity)
		if reason != "" {
			return cpapi.ErrorRecordInvalid(filename, idx, reason)
		}
		if err := fn(idx, fields); err != nil {
			return err
		}
	}
	return nil
}

// recordList parses a document and returns the list under DataKey.
//
// Errors:
//
//   - cmdperms-error-serialization -- when the data is not JSON (or JSONC).
//   - cmdperms-error-document-invalid -- when the envelope is not `{"data": [...]}`.
func recordList(filename string, data []byte) (datamodel.Node, error) {
	n, err := ipld.Decode(jsonc.ToJSON(data), json.Decode)
	if err != nil {
		return nil, cpapi.ErrorSerialization(fmt.Sprintf("decoding %q", filename), err)
	}
	if n.Kind() != datamodel.Kind_Map {
		return nil, cpapi.ErrorDocumentInvalid(filename, fmt.Sprintf("top level must be a map, found %s", n.Kind()))
	}
	records, err := n.LookupByString(DataKey)
	if err != nil {
		return nil, cpapi.ErrorDocumentInvalid(filename, fmt.Sprintf("missing %q key", DataKey))
	}
	if records.Kind() != datamodel.Kind_List {
		return nil, cpapi.ErrorDocumentInvalid(filename, fmt.Sprintf("%q must be a list, found %s", DataKey, records.Kind()))
	}
	return records, nil
}

// recordFields checks one record's shape and unpacks it.
// A non-empty reason is returned, instead of fields, when the shape is wrong.
func recordFields(rec datamodel.Node, arity int64) ([]*string, string) {
	if rec.Kind() != datamodel.Kind_List {
		return nil, fmt.Sprintf("expected a list of %d fields, found %s", arity, rec.Kind())
	}
	if rec.Length() != arity {
		return nil, fmt.Sprintf("expected %d fields, found %d", arity, rec.Length())
	}
	fields := make([]*string, 0, arity)
	itr := rec.ListIterator()
	for !itr.Done() {
		i, v, err := itr.Next()
		if err != nil {
			return nil, err.Error()
		}
		switch v.Kind() {
		case datamodel.Kind_Null:
			fields = append(fields, nil)
		case datamodel.Kind_String:
			s, _ := v.AsString()
			fields = append(fields, &s)
		default:
			return nil, fmt.Sprintf("field %d must be a string or null, found %s", i, v.Kind())
		}
	}
	return fields, ""
}
