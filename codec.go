package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec serializes request bodies and parses response payloads.
type Codec interface {
	// ContentType is the media type sent with encoded bodies.
	ContentType() string
	Marshal(v any) ([]byte, error)
	// Unmarshal parses a payload into structural data: map[string]any,
	// []any and primitives.
	Unmarshal(data []byte) (any, error)
}

// Supported codecs.
var (
	JSON        Codec = jsonCodec{}
	MessagePack Codec = msgpackCodec{}
)

// CodecFor returns the codec registered for a media type such as
// "application/json; charset=utf-8".
func CodecFor(contentType string) (Codec, error) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("parse content type %q: %w", contentType, err)
	}
	for _, c := range []Codec{JSON, MessagePack} {
		if strings.EqualFold(mt, c.ContentType()) {
			return c, nil
		}
	}
	switch strings.ToLower(mt) {
	case "application/x-msgpack", "application/vnd.msgpack":
		return MessagePack, nil
	}
	return nil, fmt.Errorf("unsupported content type %q", contentType)
}

type jsonCodec struct{}

func (jsonCodec) ContentType() string { return "application/json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

type msgpackCodec struct{}

func (msgpackCodec) ContentType() string { return "application/msgpack" }

func (msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (msgpackCodec) Unmarshal(data []byte) (any, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	// Trailing bytes mean the payload was not a single value.
	if _, err := dec.PeekCode(); err == nil {
		return nil, fmt.Errorf("msgpack: unexpected data after top-level value")
	}
	return v, nil
}
