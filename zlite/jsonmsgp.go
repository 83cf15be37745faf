package zlite

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/ugorji/go/codec"
)

/*
 Conversion map

  Sexp  <--(1)-->  Go map[string]interface{}  <--(2)-->  json / msgpack

 (1) SexpToGo() and GoToSexp(), herein. Each node becomes
     a map with a "kind" key: "void", "number", "boolean",
     "string", "identifier" carry "value"; "list" carries "items".
 (2) provided by ugorji/go/codec.
*/

const (
	kindVoid       = "void"
	kindNumber     = "number"
	kindBoolean    = "boolean"
	kindString     = "string"
	kindIdentifier = "identifier"
	kindList       = "list"
)

type msgpackHelper struct {
	initialized bool
	mh          codec.MsgpackHandle
	jh          codec.JsonHandle
}

func (m *msgpackHelper) init() {
	if m.initialized {
		return
	}

	m.mh.MapType = reflect.TypeOf(map[string]interface{}(nil))
	m.mh.RawToString = true
	m.mh.WriteExt = true
	m.mh.SignedInteger = true
	m.mh.Canonical = true // sort maps before writing them

	// JSON
	m.jh.MapType = reflect.TypeOf(map[string]interface{}(nil))
	m.jh.SignedInteger = true
	m.jh.Canonical = true

	m.initialized = true
}

var msgpHelper msgpackHelper

func init() {
	msgpHelper.init()
}

func SexpToGo(exp Sexp) interface{} {
	m := map[string]interface{}{"kind": TypeName(exp)}
	switch e := exp.(type) {
	case *SexpInt:
		m["value"] = int64(e.Val)
	case *SexpBool:
		m["value"] = e.Val
	case *SexpStr:
		m["value"] = e.S
	case *SexpSymbol:
		m["value"] = e.name
	case *SexpList:
		items := make([]interface{}, len(e.Val))
		for i, x := range e.Val {
			items[i] = SexpToGo(x)
		}
		m["items"] = items
	default:
		m["kind"] = kindVoid
	}
	return m
}

func GoToSexp(iface interface{}) (Sexp, error) {
	m, isMap := iface.(map[string]interface{})
	if !isMap {
		return SexpVoid, fmt.Errorf("GoToSexp error: expected a map, got %T", iface)
	}
	kind, _ := m["kind"].(string)
	switch kind {
	case kindVoid:
		return SexpVoid, nil
	case kindNumber:
		n, err := toInt32(m["value"])
		if err != nil {
			return SexpVoid, err
		}
		return &SexpInt{Val: n}, nil
	case kindBoolean:
		b, ok := m["value"].(bool)
		if !ok {
			return SexpVoid, fmt.Errorf("GoToSexp error: boolean value has type %T", m["value"])
		}
		return &SexpBool{Val: b}, nil
	case kindString, kindIdentifier:
		s, ok := m["value"].(string)
		if !ok {
			return SexpVoid, fmt.Errorf("GoToSexp error: %s value has type %T", kind, m["value"])
		}
		if kind == kindString {
			return &SexpStr{S: s}, nil
		}
		return MakeSymbol(s), nil
	case kindList:
		raw, ok := m["items"].([]interface{})
		if !ok && m["items"] != nil {
			return SexpVoid, fmt.Errorf("GoToSexp error: list items have type %T", m["items"])
		}
		items := make([]Sexp, 0, len(raw))
		for _, r := range raw {
			x, err := GoToSexp(r)
			if err != nil {
				return SexpVoid, err
			}
			items = append(items, x)
		}
		return MakeList(items), nil
	}
	return SexpVoid, fmt.Errorf("GoToSexp error: unknown kind '%v'", m["kind"])
}

func toInt32(v interface{}) (int32, error) {
	var n int64
	switch x := v.(type) {
	case int64:
		n = x
	case uint64:
		n = int64(x)
	case int:
		n = int64(x)
	case float64:
		n = int64(x)
		if float64(n) != x {
			return 0, fmt.Errorf("number %v is not an integer", x)
		}
	default:
		return 0, fmt.Errorf("number value has type %T", v)
	}
	if n != int64(int32(n)) {
		return 0, fmt.Errorf("number %d does not fit in 32 bits", n)
	}
	return int32(n), nil
}

// sexp -> json
func SexpToJson(exp Sexp) ([]byte, error) {
	return GoToJson(SexpToGo(exp))
}

// ProgramToJson renders forms as a json array.
func ProgramToJson(forms []Sexp) ([]byte, error) {
	arr := make([]interface{}, len(forms))
	for i, f := range forms {
		arr[i] = SexpToGo(f)
	}
	return GoToJson(arr)
}

// json -> sexp
func JsonToSexp(json []byte) (Sexp, error) {
	iface, err := JsonToGo(json)
	if err != nil {
		return SexpVoid, err
	}
	return GoToSexp(iface)
}

func SexpToMsgpack(exp Sexp) ([]byte, error) {
	return GoToMsgpack(SexpToGo(exp))
}

func MsgpackToSexp(msgp []byte) (Sexp, error) {
	iface, err := MsgpackToGo(msgp)
	if err != nil {
		return SexpVoid, fmt.Errorf("MsgpackToSexp failed at MsgpackToGo step: '%s'", err)
	}
	sexp, err := GoToSexp(iface)
	if err != nil {
		return SexpVoid, fmt.Errorf("MsgpackToSexp failed at GoToSexp step: '%s'", err)
	}
	return sexp, nil
}

// json -> go
func JsonToGo(json []byte) (interface{}, error) {
	var iface interface{}
	decoder := codec.NewDecoderBytes(json, &msgpHelper.jh)
	err := decoder.Decode(&iface)
	if err != nil {
		return nil, err
	}
	return iface, nil
}

// go -> json
func GoToJson(iface interface{}) ([]byte, error) {
	var w bytes.Buffer
	encoder := codec.NewEncoder(&w, &msgpHelper.jh)
	err := encoder.Encode(&iface)
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func GoToMsgpack(iface interface{}) ([]byte, error) {
	var w bytes.Buffer
	enc := codec.NewEncoder(&w, &msgpHelper.mh)
	err := enc.Encode(&iface)
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// msgpack -> go
func MsgpackToGo(msgp []byte) (interface{}, error) {
	var iface interface{}
	dec := codec.NewDecoderBytes(msgp, &msgpHelper.mh)
	err := dec.Decode(&iface)
	if err != nil {
		return nil, err
	}
	return iface, nil
}
