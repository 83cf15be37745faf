package zlite

import (
	"fmt"

	"github.com/tinylib/msgp/msgp"
)

// Program is a parsed sequence of top-level forms with a compact
// msgpack encoding. Each node is a 2-element array of [tag, payload];
// void has a nil payload and a list's payload is an array of nodes.
type Program []Sexp

const (
	tagVoid uint8 = iota
	tagInt
	tagBool
	tagStr
	tagSymbol
	tagList
)

// MarshalMsg implements msgp.Marshaler
func (z Program) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, z.Msgsize())
	o = msgp.AppendArrayHeader(o, uint32(len(z)))
	for _, x := range z {
		o, err = appendSexp(o, x)
		if err != nil {
			return
		}
	}
	return
}

func appendSexp(o []byte, x Sexp) ([]byte, error) {
	o = msgp.AppendArrayHeader(o, 2)
	switch e := x.(type) {
	case SexpSentinel:
		o = msgp.AppendUint8(o, tagVoid)
		o = msgp.AppendNil(o)
	case *SexpInt:
		o = msgp.AppendUint8(o, tagInt)
		o = msgp.AppendInt32(o, e.Val)
	case *SexpBool:
		o = msgp.AppendUint8(o, tagBool)
		o = msgp.AppendBool(o, e.Val)
	case *SexpStr:
		o = msgp.AppendUint8(o, tagStr)
		o = msgp.AppendString(o, e.S)
	case *SexpSymbol:
		o = msgp.AppendUint8(o, tagSymbol)
		o = msgp.AppendString(o, e.name)
	case *SexpList:
		o = msgp.AppendUint8(o, tagList)
		o = msgp.AppendArrayHeader(o, uint32(len(e.Val)))
		var err error
		for _, child := range e.Val {
			o, err = appendSexp(o, child)
			if err != nil {
				return o, err
			}
		}
	default:
		return o, fmt.Errorf("cannot encode %T", x)
	}
	return o, nil
}

// UnmarshalMsg implements msgp.Unmarshaler
func (z *Program) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var n uint32
	n, bts, err = msgp.ReadArrayHeaderBytes(bts)
	if err != nil {
		return
	}
	err = checkNodeCount(n, bts)
	if err != nil {
		return
	}
	prog := make(Program, 0, n)
	for i := uint32(0); i < n; i++ {
		var x Sexp
		x, bts, err = readSexp(bts)
		if err != nil {
			return
		}
		prog = append(prog, x)
	}
	*z = prog
	o = bts
	return
}

// minNodeSize is the encoded size of the smallest node: a fixarray
// header, the tag and a one byte payload.
const minNodeSize = 3

// checkNodeCount rejects array headers claiming more nodes than the
// remaining bytes could hold.
func checkNodeCount(n uint32, bts []byte) error {
	if uint64(n)*minNodeSize > uint64(len(bts)) {
		return msgp.ErrShortBytes
	}
	return nil
}

func readSexp(bts []byte) (x Sexp, o []byte, err error) {
	var sz uint32
	sz, bts, err = msgp.ReadArrayHeaderBytes(bts)
	if err != nil {
		return
	}
	if sz != 2 {
		err = fmt.Errorf("node header has %d elements, want 2", sz)
		return
	}
	var tag uint8
	tag, bts, err = msgp.ReadUint8Bytes(bts)
	if err != nil {
		return
	}
	switch tag {
	case tagVoid:
		bts, err = msgp.ReadNilBytes(bts)
		x = SexpVoid
	case tagInt:
		var n int32
		n, bts, err = msgp.ReadInt32Bytes(bts)
		x = &SexpInt{Val: n}
	case tagBool:
		var b bool
		b, bts, err = msgp.ReadBoolBytes(bts)
		x = &SexpBool{Val: b}
	case tagStr:
		var s string
		s, bts, err = msgp.ReadStringBytes(bts)
		x = &SexpStr{S: s}
	case tagSymbol:
		var s string
		s, bts, err = msgp.ReadStringBytes(bts)
		x = MakeSymbol(s)
	case tagList:
		var n uint32
		n, bts, err = msgp.ReadArrayHeaderBytes(bts)
		if err != nil {
			return
		}
		err = checkNodeCount(n, bts)
		if err != nil {
			return
		}
		items := make([]Sexp, 0, n)
		for i := uint32(0); i < n; i++ {
			var child Sexp
			child, bts, err = readSexp(bts)
			if err != nil {
				return
			}
			items = append(items, child)
		}
		x = MakeList(items)
	default:
		err = fmt.Errorf("unknown node tag %d", tag)
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (z Program) Msgsize() (s int) {
	s = msgp.ArrayHeaderSize
	for _, x := range z {
		s += sexpMsgsize(x)
	}
	return
}

func sexpMsgsize(x Sexp) (s int) {
	s = msgp.ArrayHeaderSize + msgp.Uint8Size
	switch e := x.(type) {
	case *SexpInt:
		s += msgp.Int32Size
	case *SexpBool:
		s += msgp.BoolSize
	case *SexpStr:
		s += msgp.StringPrefixSize + len(e.S)
	case *SexpSymbol:
		s += msgp.StringPrefixSize + len(e.name)
	case *SexpList:
		s += msgp.ArrayHeaderSize
		for _, child := range e.Val {
			s += sexpMsgsize(child)
		}
	default:
		s += msgp.NilSize
	}
	return
}
