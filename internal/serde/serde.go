package serde

import (
	"sync"

	"github.com/ugorji/go/codec"
)

// resolver holds an encoder and decoder.
type resolver struct {
	check bool

	jsonEncoder *codec.Encoder
	jsonDecoder *codec.Decoder
	jsonHandle  codec.JsonHandle

	prettyEncoder *codec.Encoder
	prettyHandle  codec.JsonHandle

	jsonData   []byte
	prettyData []byte

	jsonMu sync.Mutex
}

var gendecoder resolver

func init() {
	if !gendecoder.check {
		gendecoder.jsonHandle = codec.JsonHandle{}
		gendecoder.jsonHandle.PreferFloat = true
		gendecoder.jsonHandle.TypeInfos = codec.NewTypeInfos([]string{"json"})

		gendecoder.prettyHandle = codec.JsonHandle{}
		gendecoder.prettyHandle.Indent = 2
		gendecoder.prettyHandle.TypeInfos = gendecoder.jsonHandle.TypeInfos

		gendecoder.jsonData = make([]byte, 0, 4096)
		gendecoder.prettyData = make([]byte, 0, 4096)

		gendecoder.jsonEncoder = codec.NewEncoderBytes(&gendecoder.jsonData, &gendecoder.jsonHandle)
		gendecoder.jsonDecoder = codec.NewDecoderBytes(nil, &gendecoder.jsonHandle)
		gendecoder.prettyEncoder = codec.NewEncoderBytes(&gendecoder.prettyData, &gendecoder.prettyHandle)

		gendecoder.check = true
	}
}

// MarshalJson encodes v as compact JSON.
func MarshalJson[T any](v T) ([]byte, error) {
	gendecoder.jsonMu.Lock()
	defer gendecoder.jsonMu.Unlock()

	gendecoder.jsonData = gendecoder.jsonData[:0]
	gendecoder.jsonEncoder.ResetBytes(&gendecoder.jsonData)
	if err := gendecoder.jsonEncoder.Encode(v); err != nil {
		return nil, err
	}

	return append([]byte(nil), gendecoder.jsonData...), nil
}

// MarshalJsonIndent encodes v as indented JSON, for files meant to be edited by hand.
func MarshalJsonIndent[T any](v T) ([]byte, error) {
	gendecoder.jsonMu.Lock()
	defer gendecoder.jsonMu.Unlock()

	gendecoder.prettyData = gendecoder.prettyData[:0]
	gendecoder.prettyEncoder.ResetBytes(&gendecoder.prettyData)
	if err := gendecoder.prettyEncoder.Encode(v); err != nil {
		return nil, err
	}

	return append(append([]byte(nil), gendecoder.prettyData...), '\n'), nil
}

// UnmarshalJson decodes JSON data into marshalTo, which must be a pointer.
func UnmarshalJson[T any](data []byte, marshalTo T) error {
	gendecoder.jsonMu.Lock()
	defer gendecoder.jsonMu.Unlock()

	gendecoder.jsonDecoder.ResetBytes(data)

	return gendecoder.jsonDecoder.Decode(marshalTo)
}
