// Package grpcjson registers a JSON codec for gRPC so services can be served
// without generated protobuf stubs. Clients select it with
// grpc.CallContentSubtype(grpcjson.Name).
package grpcjson

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

const Name = "json"

type codec struct{}

func init() {
	encoding.RegisterCodec(codec{})
}

func (codec) Name() string { return Name }

func (codec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	return json.Marshal(v)
}

func (codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if m, ok := v.(proto.Message); ok {
		return protojson.Unmarshal(data, m)
	}
	return json.Unmarshal(data, v)
}
