package daemon

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/gridscript/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/protobuf/types/known/structpb"
)

// Wire field names.
const (
	fieldFile     = "file"
	fieldFunction = "function"
	fieldArgs     = "args"
	fieldCaller   = "caller"
	fieldError    = "error"
	fieldSheet    = "sheet"
	fieldRow      = "row"
	fieldCol      = "col"
	fieldFromCell = "from_cell"
	fieldWizard   = "wizard"
)

// encodeCell maps a cell onto a protobuf value. Error cells travel as a struct
// holding their numeric code so they stay distinct from text that looks like one.
func encodeCell(c domain.Cell) *structpb.Value {
	switch c.Kind {
	case domain.KindNumber:
		if math.IsNaN(c.Num) || math.IsInf(c.Num, 0) {
			return errorValue(domain.ErrCodeNum)
		}
		return structpb.NewNumberValue(c.Num)
	case domain.KindBool:
		return structpb.NewBoolValue(c.Bool)
	case domain.KindText, domain.KindWideText:
		return structpb.NewStringValue(c.Str)
	case domain.KindError:
		return errorValue(c.Code)
	default:
		return structpb.NewNullValue()
	}
}

func errorValue(code domain.ErrorCode) *structpb.Value {
	return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
		fieldError: structpb.NewNumberValue(float64(code)),
	}})
}

func decodeCell(v *structpb.Value) (domain.Cell, error) {
	switch k := v.GetKind().(type) {
	case nil, *structpb.Value_NullValue:
		return domain.Empty(), nil
	case *structpb.Value_NumberValue:
		return domain.Number(k.NumberValue), nil
	case *structpb.Value_BoolValue:
		return domain.Bool(k.BoolValue), nil
	case *structpb.Value_StringValue:
		return domain.Text(k.StringValue), nil
	case *structpb.Value_StructValue:
		code, ok := k.StructValue.GetFields()[fieldError]
		if !ok {
			return domain.Cell{}, zerr.Wrap(domain.ErrConversion, "struct cell without error code")
		}
		return domain.ErrorCell(domain.ErrorCode(code.GetNumberValue())), nil
	default:
		return domain.Cell{}, zerr.With(zerr.Wrap(domain.ErrConversion, "unsupported cell value"), "type", fmt.Sprintf("%T", k))
	}
}

// encodeGrid encodes g as a list of rows.
func encodeGrid(g domain.Grid) *structpb.ListValue {
	rows := make([]*structpb.Value, g.Rows())
	for r := range g.Rows() {
		cells := make([]*structpb.Value, g.Cols())
		for c := range g.Cols() {
			cells[c] = encodeCell(g.At(r, c))
		}
		rows[r] = structpb.NewListValue(&structpb.ListValue{Values: cells})
	}
	return &structpb.ListValue{Values: rows}
}

func decodeGrid(l *structpb.ListValue) (domain.Grid, error) {
	rows := make([][]domain.Cell, len(l.GetValues()))
	for r, rv := range l.GetValues() {
		row := rv.GetListValue()
		if row == nil {
			return domain.Grid{}, zerr.With(zerr.Wrap(domain.ErrConversion, "grid row is not a list"), "row", r)
		}
		cells := make([]domain.Cell, len(row.GetValues()))
		for c, cv := range row.GetValues() {
			cell, err := decodeCell(cv)
			if err != nil {
				return domain.Grid{}, zerr.With(zerr.With(err, "row", r), "col", c)
			}
			cells[c] = cell
		}
		rows[r] = cells
	}
	return domain.GridFromRows(rows)
}

func encodeCallRequest(req ports.CallRequest) *structpb.Struct {
	args := make([]*structpb.Value, len(req.Args))
	for i, g := range req.Args {
		args[i] = structpb.NewListValue(encodeGrid(g))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldFile:     structpb.NewStringValue(req.File),
		fieldFunction: structpb.NewStringValue(req.Function),
		fieldArgs:     structpb.NewListValue(&structpb.ListValue{Values: args}),
		fieldCaller: structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			fieldSheet:    structpb.NewStringValue(req.Caller.Sheet),
			fieldRow:      structpb.NewNumberValue(float64(req.Caller.Row)),
			fieldCol:      structpb.NewNumberValue(float64(req.Caller.Col)),
			fieldFromCell: structpb.NewBoolValue(req.Caller.FromCell),
			fieldWizard:   structpb.NewBoolValue(req.Caller.Wizard),
		}}),
	}}
}

func decodeCallRequest(s *structpb.Struct) (ports.CallRequest, error) {
	fields := s.GetFields()
	req := ports.CallRequest{
		File:     fields[fieldFile].GetStringValue(),
		Function: fields[fieldFunction].GetStringValue(),
		Caller:   domain.NoCaller(),
	}
	if req.File == "" || req.Function == "" {
		return req, zerr.Wrap(domain.ErrInvalidArgument, "call needs a file and a function")
	}

	for i, v := range fields[fieldArgs].GetListValue().GetValues() {
		g, err := decodeGrid(v.GetListValue())
		if err != nil {
			return req, zerr.With(errors.Join(domain.ErrInvalidArgument, err), "slot", i+1)
		}
		req.Args = append(req.Args, g)
	}

	if c := fields[fieldCaller].GetStructValue(); c != nil {
		cf := c.GetFields()
		req.Caller = domain.Caller{
			Sheet:    cf[fieldSheet].GetStringValue(),
			Row:      int(cf[fieldRow].GetNumberValue()),
			Col:      int(cf[fieldCol].GetNumberValue()),
			FromCell: cf[fieldFromCell].GetBoolValue(),
			Wizard:   cf[fieldWizard].GetBoolValue(),
		}
	}
	return req, nil
}

// Status fields.
const (
	fieldRunning       = "running"
	fieldPID           = "pid"
	fieldUptime        = "uptime_seconds"
	fieldLastActivity  = "last_activity_unix"
	fieldIdleRemaining = "idle_remaining_seconds"
	fieldFreshness     = "freshness"
	fieldModules       = "modules"
	fieldDirectories   = "directories"
	fieldPath          = "path"
	fieldModTime       = "mod_time"
	fieldFingerprint   = "fingerprint"
	fieldClean         = "clean"
	fieldReloads       = "reloads"
	fieldAliases       = "aliases"
)

func encodeStatus(st *ports.DaemonStatus) *structpb.Struct {
	modules := make([]*structpb.Value, len(st.Cache.Modules))
	for i, m := range st.Cache.Modules {
		modules[i] = structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			fieldPath:        structpb.NewStringValue(m.Path),
			fieldModTime:     structpb.NewStringValue(m.ModTime.Format(time.RFC3339Nano)),
			fieldFingerprint: structpb.NewStringValue(strconv.FormatUint(m.Fingerprint, 16)),
			fieldClean:       structpb.NewBoolValue(m.Clean),
			fieldReloads:     structpb.NewNumberValue(float64(m.Reloads)),
			fieldAliases:     stringList(m.Aliases),
		}})
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldRunning:       structpb.NewBoolValue(st.Running),
		fieldPID:           structpb.NewNumberValue(float64(st.PID)),
		fieldUptime:        structpb.NewNumberValue(st.Uptime.Seconds()),
		fieldLastActivity:  structpb.NewNumberValue(float64(st.LastActivity.Unix())),
		fieldIdleRemaining: structpb.NewNumberValue(st.IdleRemaining.Seconds()),
		fieldFreshness:     structpb.NewBoolValue(st.Cache.Freshness),
		fieldModules:       structpb.NewListValue(&structpb.ListValue{Values: modules}),
		fieldDirectories:   stringList(st.Cache.Directories),
	}}
}

func decodeStatus(s *structpb.Struct) *ports.DaemonStatus {
	f := s.GetFields()
	st := &ports.DaemonStatus{
		Running:       f[fieldRunning].GetBoolValue(),
		PID:           int(f[fieldPID].GetNumberValue()),
		Uptime:        seconds(f[fieldUptime].GetNumberValue()),
		LastActivity:  time.Unix(int64(f[fieldLastActivity].GetNumberValue()), 0),
		IdleRemaining: seconds(f[fieldIdleRemaining].GetNumberValue()),
		Cache: domain.CacheStats{
			Freshness:   f[fieldFreshness].GetBoolValue(),
			Directories: stringValues(f[fieldDirectories]),
		},
	}
	for _, v := range f[fieldModules].GetListValue().GetValues() {
		mf := v.GetStructValue().GetFields()
		modTime, _ := time.Parse(time.RFC3339Nano, mf[fieldModTime].GetStringValue())
		fp, _ := strconv.ParseUint(mf[fieldFingerprint].GetStringValue(), 16, 64)
		st.Cache.Modules = append(st.Cache.Modules, domain.ModuleStat{
			Path:        mf[fieldPath].GetStringValue(),
			ModTime:     modTime,
			Fingerprint: fp,
			Clean:       mf[fieldClean].GetBoolValue(),
			Reloads:     int(mf[fieldReloads].GetNumberValue()),
			Aliases:     stringValues(mf[fieldAliases]),
		})
	}
	return st
}

func stringList(ss []string) *structpb.Value {
	values := make([]*structpb.Value, len(ss))
	for i, s := range ss {
		values[i] = structpb.NewStringValue(s)
	}
	return structpb.NewListValue(&structpb.ListValue{Values: values})
}

func stringValues(v *structpb.Value) []string {
	var out []string
	for _, item := range v.GetListValue().GetValues() {
		out = append(out, item.GetStringValue())
	}
	return out
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
