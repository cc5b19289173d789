package proto

import (
	"encoding/base64"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// Field names used in request and response structs.
const (
	FieldUsername     = "username"
	FieldSalt         = "salt"
	FieldVerifier     = "verifier"
	FieldAccessToken  = "access_token"
	FieldRefreshToken = "refresh_token"
	FieldUserID       = "user_id"
	FieldStatus       = "status"
	FieldOwnerID      = "owner_id"
	FieldKind         = "kind"
	FieldID           = "id"
	FieldDocument     = "document"
	FieldDocuments    = "documents"
	FieldCreatedAt    = "created_at"
	FieldUpdatedAt    = "updated_at"
	FieldDeleted      = "deleted"
	FieldPayload      = "payload"
	FieldKey          = "key"
	FieldURL          = "url"
)

// StatusOK is the Ping answer of a healthy server.
const StatusOK = "OK"

// Document is the wire form of one synchronized record.
type Document struct {
	Kind      string
	ID        string
	OwnerID   string
	CreatedAt int64
	UpdatedAt int64
	Deleted   bool
	Payload   *structpb.Struct
}

func (d *Document) ToStruct() *structpb.Struct {
	payload := d.Payload
	if payload == nil {
		payload = &structpb.Struct{Fields: map[string]*structpb.Value{}}
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldKind:      structpb.NewStringValue(d.Kind),
		FieldID:        structpb.NewStringValue(d.ID),
		FieldOwnerID:   structpb.NewStringValue(d.OwnerID),
		FieldCreatedAt: structpb.NewNumberValue(float64(d.CreatedAt)),
		FieldUpdatedAt: structpb.NewNumberValue(float64(d.UpdatedAt)),
		FieldDeleted:   structpb.NewBoolValue(d.Deleted),
		FieldPayload:   structpb.NewStructValue(payload),
	}}
}

// DocumentFromStruct validates and converts a wire document.
func DocumentFromStruct(s *structpb.Struct) (*Document, error) {
	if s == nil {
		return nil, fmt.Errorf("document is missing")
	}
	d := &Document{
		Kind:      String(s, FieldKind),
		ID:        String(s, FieldID),
		OwnerID:   String(s, FieldOwnerID),
		CreatedAt: Int64(s, FieldCreatedAt),
		UpdatedAt: Int64(s, FieldUpdatedAt),
		Deleted:   Bool(s, FieldDeleted),
		Payload:   Struct(s, FieldPayload),
	}
	if d.Kind == "" || d.ID == "" {
		return nil, fmt.Errorf("document kind and id are required")
	}
	if d.Payload == nil {
		d.Payload = &structpb.Struct{Fields: map[string]*structpb.Value{}}
	}
	return d, nil
}

// NewStruct builds a Struct from already converted values.
func NewStruct(fields map[string]*structpb.Value) *structpb.Struct {
	return &structpb.Struct{Fields: fields}
}

// BytesValue carries binary data as base64 text.
func BytesValue(b []byte) *structpb.Value {
	return structpb.NewStringValue(base64.StdEncoding.EncodeToString(b))
}

func field(s *structpb.Struct, key string) *structpb.Value {
	if s == nil {
		return nil
	}
	return s.GetFields()[key]
}

// String returns the string field or "".
func String(s *structpb.Struct, key string) string {
	return field(s, key).GetStringValue()
}

// Int64 returns the numeric field truncated to an integer.
func Int64(s *structpb.Struct, key string) int64 {
	return int64(field(s, key).GetNumberValue())
}

func Bool(s *structpb.Struct, key string) bool {
	return field(s, key).GetBoolValue()
}

// Struct returns the nested struct field or nil.
func Struct(s *structpb.Struct, key string) *structpb.Struct {
	return field(s, key).GetStructValue()
}

// List returns the list field's values.
func List(s *structpb.Struct, key string) []*structpb.Value {
	return field(s, key).GetListValue().GetValues()
}

// Bytes decodes a base64 field.
func Bytes(s *structpb.Struct, key string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(String(s, key))
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", key, err)
	}
	return b, nil
}
