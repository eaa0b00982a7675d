package blob

import (
	"github.com/arloliu/bfast/errs"
	"github.com/arloliu/bfast/format"
	"github.com/arloliu/bfast/value"
)

// batchClass selects the leaf encoder of a batch.
type batchClass uint8

const (
	// classSimple batches hold only Null, Bool, Int, Float and Text in their first record.
	classSimple batchClass = iota
	// classComplex batches hold at least one other kind in their first record.
	classComplex
)

// fieldLayout is the key order of a batch, captured from its first record.
//
// ids are filled while the first record is encoded, so ids are assigned in exactly the
// order the generic path would assign them, nested record keys included.
type fieldLayout struct {
	keys  []string
	ids   []uint32
	class batchClass
}

func isSimple(k value.Kind) bool {
	switch k { //nolint:exhaustive
	case value.KindNull, value.KindBool, value.KindInt, value.KindFloat, value.KindText:
		return true
	default:
		return false
	}
}

// newFieldLayout checks that every element is a record and derives the layout from
// the first one. It returns errs.ErrNotHomogeneousBatch when the batch path does not
// apply, before anything is written.
func newFieldLayout(elems []value.Value) (*fieldLayout, error) {
	if len(elems) == 0 {
		return nil, errs.ErrNotHomogeneousBatch
	}
	for _, elem := range elems {
		if elem.Kind() != value.KindRecord {
			return nil, errs.ErrNotHomogeneousBatch
		}
	}

	first := elems[0].Fields()
	// an empty first record would project every record to empty
	if len(first) == 0 {
		return nil, errs.ErrNotHomogeneousBatch
	}

	layout := &fieldLayout{
		keys:  make([]string, len(first)),
		ids:   make([]uint32, len(first)),
		class: classSimple,
	}
	for i, f := range first {
		layout.keys[i] = f.Key
		if !isSimple(f.Value.Kind()) {
			layout.class = classComplex
		}
	}

	return layout, nil
}

// project returns the value of the layout field at position i in fields. A record with
// the same key order matches by position; otherwise the key is searched for.
// Absent fields are Null.
func (l *fieldLayout) project(fields []value.Field, i int) value.Value {
	key := l.keys[i]
	if i < len(fields) && fields[i].Key == key {
		return fields[i].Value
	}
	for _, f := range fields {
		if f.Key == key {
			return f.Value
		}
	}

	return value.Null()
}

// encodeBatch encodes a sequence of records against the layout of its first record.
//
// Later records are projected onto that layout: fields missing from a record encode as
// Null and fields not in the layout are dropped. When every record has the layout keys
// in the layout order the output is byte-identical to the generic path.
//
// Returns errs.ErrNotHomogeneousBatch, with nothing written, if the batch path does
// not apply.
func (e *Encoder) encodeBatch(elems []value.Value) error {
	layout, err := newFieldLayout(elems)
	if err != nil {
		return err
	}

	if err := e.encodeLayoutRecord(layout, elems[0].Fields()); err != nil {
		return err
	}

	leaf := e.encodeValue
	if layout.class == classSimple {
		leaf = e.encodeSimple
	}

	for _, elem := range elems[1:] {
		if err := e.enter(); err != nil {
			return err
		}

		fields := elem.Fields()
		e.payload.AppendByte(byte(format.TagRecord))
		for i, id := range layout.ids {
			e.payload.AppendUint32(id)
			if err := leaf(layout.project(fields, i)); err != nil {
				return err
			}
		}
		e.payload.AppendByte(byte(format.TagRecordEnd))

		e.exit()
	}

	return nil
}

// encodeLayoutRecord encodes the first record of a batch like encodeRecord does and
// captures the id of each layout key as it is interned.
func (e *Encoder) encodeLayoutRecord(layout *fieldLayout, fields []value.Field) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.exit()

	e.payload.AppendByte(byte(format.TagRecord))
	for i, f := range fields {
		id, err := e.table.Intern(f.Key)
		if err != nil {
			return err
		}
		layout.ids[i] = id
		e.payload.AppendUint32(id)

		if err := e.encodeValue(f.Value); err != nil {
			return err
		}
	}
	e.payload.AppendByte(byte(format.TagRecordEnd))

	return nil
}

// encodeSimple is the leaf encoder of simple batches. A record classified as simple
// may still carry other kinds in later elements; those take the generic path.
func (e *Encoder) encodeSimple(v value.Value) error {
	switch v.Kind() { //nolint:exhaustive
	case value.KindNull:
		e.payload.AppendByte(byte(format.TagNull))
	case value.KindBool:
		e.appendBool(v.Bool())
	case value.KindInt:
		e.appendInt(v.Int())
	case value.KindFloat:
		e.appendFloat(v.Float())
	case value.KindText:
		return e.appendText(format.TagText, v.Text())
	default:
		return e.encodeValue(v)
	}

	return nil
}
