package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-farma-api/internal/domain"
)

// ParamKind identifica o tipo de um Param.
type ParamKind uint8

const (
	KindNull ParamKind = iota
	KindText
	KindInt
	KindFloat
	KindBool
	KindTime
	KindBytes
	KindDecimal
	KindArray
	KindRecord
)

func (k ParamKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindBytes:
		return "bytes"
	case KindDecimal:
		return "decimal"
	case KindArray:
		return "array"
	case KindRecord:
		return "record"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

func (k ParamKind) primitive() bool {
	return k <= KindDecimal
}

// Param é um valor que pode ser ligado a um placeholder $n.
// O conjunto é fechado: primitivos, arrays homogêneos de primitivos e registros
// (objetos chave -> primitivo, enviados como JSON). O valor zero é NULL.
type Param struct {
	kind  ParamKind
	value any
	elem  ParamKind // tipo dos elementos quando kind == KindArray
}

// Kind devolve o tipo do parâmetro.
func (p Param) Kind() ParamKind { return p.kind }

// Construtores dos tipos primitivos.
func Null() Param { return Param{kind: KindNull} }
func Text(s string) Param { return Param{kind: KindText, value: s} }
func Int(n int64) Param { return Param{kind: KindInt, value: n} }
func Float(f float64) Param { return Param{kind: KindFloat, value: f} }
func Bool(b bool) Param { return Param{kind: KindBool, value: b} }
func Time(t time.Time) Param { return Param{kind: KindTime, value: t} }
func Bytes(b []byte) Param { return Param{kind: KindBytes, value: b} }
func Decimal(d decimal.Decimal) Param { return Param{kind: KindDecimal, value: d} }

// OptText devolve NULL para nil.
func OptText(s *string) Param {
	if s == nil {
		return Null()
	}
	return Text(*s)
}

// OptInt devolve NULL para nil.
func OptInt(n *int64) Param {
	if n == nil {
		return Null()
	}
	return Int(*n)
}

// OptDecimal devolve NULL quando o decimal não é válido.
func OptDecimal(d decimal.NullDecimal) Param {
	if !d.Valid {
		return Null()
	}
	return Decimal(d.Decimal)
}

// Array monta um array a partir de parâmetros; os elementos são verificados ao ligar.
func Array(elems ...Param) Param {
	return Param{kind: KindArray, value: elems}
}

// TextArray array de texto (aceita vazio).
func TextArray(ss ...string) Param {
	elems := make([]Param, len(ss))
	for i, s := range ss {
		elems[i] = Text(s)
	}
	return Param{kind: KindArray, value: elems, elem: KindText}
}

// IntArray array de inteiros (aceita vazio).
func IntArray(ns ...int64) Param {
	elems := make([]Param, len(ns))
	for i, n := range ns {
		elems[i] = Int(n)
	}
	return Param{kind: KindArray, value: elems, elem: KindInt}
}

// RecordParam objeto chave -> primitivo, ligado como JSON (para colunas json/jsonb).
func RecordParam(fields map[string]Param) Param {
	return Param{kind: KindRecord, value: fields}
}

// bindParams valida os parâmetros e os converte para valores aceitos pelo pgx.
func bindParams(params []Param) ([]any, error) {
	if len(params) == 0 {
		return nil, nil
	}
	args := make([]any, len(params))
	for i, p := range params {
		v, err := p.bind()
		if err != nil {
			return nil, fmt.Errorf("%w: $%d: %v", domain.ErrInvalidParam, i+1, err)
		}
		args[i] = v
	}
	return args, nil
}

func (p Param) bind() (any, error) {
	switch p.kind {
	case KindNull:
		return nil, nil
	case KindText, KindInt, KindFloat, KindBool, KindTime, KindBytes, KindDecimal:
		return p.value, nil
	case KindArray:
		return p.bindArray()
	case KindRecord:
		return p.bindRecord()
	default:
		return nil, fmt.Errorf("tipo desconhecido %s", p.kind)
	}
}

func (p Param) bindArray() (any, error) {
	elems, _ := p.value.([]Param)
	kind := p.elem
	for i, e := range elems {
		if !e.kind.primitive() || e.kind == KindNull {
			return nil, fmt.Errorf("elemento %d do array deve ser primitivo não nulo, recebido %s", i, e.kind)
		}
		if kind == KindNull {
			kind = e.kind
		}
		if e.kind != kind {
			return nil, fmt.Errorf("array heterogêneo: %s e %s", kind, e.kind)
		}
	}
	switch kind {
	case KindText:
		return collect[string](elems), nil
	case KindInt:
		return collect[int64](elems), nil
	case KindFloat:
		return collect[float64](elems), nil
	case KindBool:
		return collect[bool](elems), nil
	case KindTime:
		return collect[time.Time](elems), nil
	case KindDecimal:
		return collect[decimal.Decimal](elems), nil
	case KindBytes:
		return collect[[]byte](elems), nil
	default:
		return nil, fmt.Errorf("array vazio sem tipo; use TextArray ou IntArray")
	}
}

func collect[T any](elems []Param) []T {
	out := make([]T, len(elems))
	for i, e := range elems {
		out[i] = e.value.(T)
	}
	return out
}

func (p Param) bindRecord() (any, error) {
	fields, _ := p.value.(map[string]Param)
	obj := make(map[string]any, len(fields))
	for k, f := range fields {
		if !f.kind.primitive() {
			return nil, fmt.Errorf("campo %q do registro deve ser primitivo, recebido %s", k, f.kind)
		}
		obj[k] = f.value
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("serializar registro: %w", err)
	}
	return string(b), nil
}
