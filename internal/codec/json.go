// Package codec provides a JSON wire codec for the migchat gRPC service,
// used in place of the protobuf-binary codec generated by protoc: the
// service's messages here are hand-written Go structs rather than
// generated proto.Message implementations, so the codec that (de)serializes
// them is plain encoding/json rather than google.golang.org/protobuf.
package codec

import "encoding/json"

// Name is the content-subtype a client advertises when it dials with
// grpc.ForceCodec(JSON{}). The server is built with
// grpc.ForceServerCodec(JSON{}) and decodes every request with this codec;
// the codec is not registered globally, so a client must force it too.
const Name = "json"

// JSON implements grpc's encoding.Codec over encoding/json.
type JSON struct{}

func (JSON) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (JSON) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (JSON) Name() string {
	return Name
}
