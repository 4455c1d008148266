package apiclient

import (
	"reflect"
	"testing"
)

func TestCodecFor(t *testing.T) {
	tests := []struct {
		contentType string
		want        Codec
		wantErr     bool
	}{
		{"application/json", JSON, false},
		{"application/json; charset=utf-8", JSON, false},
		{"Application/JSON", JSON, false},
		{"application/msgpack", MessagePack, false},
		{"application/x-msgpack", MessagePack, false},
		{"application/vnd.msgpack", MessagePack, false},
		{"text/html", nil, true},
		{";;", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			got, err := CodecFor(tt.contentType)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got.ContentType(), tt.want.ContentType())
			}
		})
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	value := map[string]any{
		"title":     "write tests",
		"id":        float64(3),
		"completed": false,
		"tags":      []any{"a", "b"},
	}

	for _, codec := range []Codec{JSON, MessagePack} {
		t.Run(codec.ContentType(), func(t *testing.T) {
			data, err := codec.Marshal(value)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			got, err := codec.Unmarshal(data)
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if !reflect.DeepEqual(got, value) {
				t.Errorf("got %#v, want %#v", got, value)
			}
		})
	}
}

func TestCodec_UnmarshalMalformed(t *testing.T) {
	tests := []struct {
		name  string
		codec Codec
		data  []byte
	}{
		{"json truncated", JSON, []byte(`{"a":`)},
		{"json not json", JSON, []byte(`<html>`)},
		{"json empty", JSON, nil},
		{"msgpack empty", MessagePack, nil},
		{"msgpack trailing data", MessagePack, []byte{0x01, 0x02}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if v, err := tt.codec.Unmarshal(tt.data); err == nil {
				t.Errorf("expected error, got %#v", v)
			}
		})
	}
}
