// Package pdfinfo stamps document information onto finished PDFs.
// It wraps pdfcpu to isolate the external dependency, the same way
// yamlutil isolates YAML parsing.
package pdfinfo

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Sentinel errors for stamping operations.
var (
	ErrEmptyPDF = errors.New("pdfinfo: empty PDF data")
	ErrStamp    = errors.New("pdfinfo: failed to stamp metadata")
)

// Info holds the document information dictionary fields to stamp.
// Empty fields are left untouched in the target PDF.
type Info struct {
	Title    string
	Creator  string
	Producer string
}

// fields returns the non-empty entries as Info dictionary keys.
func (i Info) fields() map[string]string {
	m := make(map[string]string, 3)
	if i.Title != "" {
		m["Title"] = i.Title
	}
	if i.Creator != "" {
		m["Creator"] = i.Creator
	}
	if i.Producer != "" {
		m["Producer"] = i.Producer
	}
	return m
}

// IsZero reports whether no field is set.
func (i Info) IsZero() bool {
	return i.Title == "" && i.Creator == "" && i.Producer == ""
}

// Stamp writes the given fields into the PDF's document information
// dictionary and returns the rewritten PDF. The input slice is not
// modified. Stamping an Info with no fields set returns the input
// unchanged.
//
// The update is appended as a PDF increment rather than going through
// a full pdfcpu rewrite: a full write stamps its own Producer entry
// over anything set here, while the increment path leaves the Info
// dict exactly as built.
//
// Validation is relaxed: the PDFs come straight from the renderer and
// strict validation would reject some perfectly viewable output.
func Stamp(pdf []byte, info Info) ([]byte, error) {
	if len(pdf) == 0 {
		return nil, ErrEmptyPDF
	}
	if info.IsZero() {
		return pdf, nil
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.WriteXRefStream = false

	ctx, err := api.ReadAndValidate(bytes.NewReader(pdf), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStamp, err)
	}

	objNr, err := updateInfoDict(ctx, info)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStamp, err)
	}

	var buf bytes.Buffer
	buf.Write(pdf)
	if last := pdf[len(pdf)-1]; last != '\n' && last != '\r' {
		buf.WriteByte('\n')
	}

	ctx.Write.Increment = true
	ctx.Write.Offset = int64(buf.Len())
	ctx.Write.IncrementWithObjNr(objNr)

	if err := api.WriteIncrement(ctx, &buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStamp, err)
	}

	return buf.Bytes(), nil
}

// updateInfoDict merges the given fields into the document Info dict,
// creating one when the original file has none, and returns the Info
// object number for the increment.
func updateInfoDict(ctx *model.Context, info Info) (int, error) {
	var d types.Dict
	if ctx.Info != nil {
		var err error
		d, err = ctx.DereferenceDict(*ctx.Info)
		if err != nil {
			return 0, err
		}
	}
	if d == nil {
		d = types.NewDict()
		ir, err := ctx.IndRefForNewObject(d)
		if err != nil {
			return 0, err
		}
		ctx.Info = ir
	}

	for key, value := range info.fields() {
		s, err := types.EscapeUTF16String(value)
		if err != nil {
			return 0, err
		}
		d[key] = types.StringLiteral(*s)
	}

	return ctx.Info.ObjectNumber.Value(), nil
}
