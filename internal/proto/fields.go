package proto

import "google.golang.org/protobuf/types/known/structpb"

// Field names used in request and response structs.
const (
	FieldID       = "id"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldName     = "name"
	FieldDate     = "date"
	FieldMessage  = "message"
	FieldToken    = "token"
)

// Strings builds a Struct whose fields are all strings. Empty values are
// left out.
func Strings(fields map[string]string) *structpb.Struct {
	s := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(fields))}
	for k, v := range fields {
		if v == "" {
			continue
		}
		s.Fields[k] = structpb.NewStringValue(v)
	}
	return s
}

// String returns the string field key of s, or "" if it is absent or not a
// string.
func String(s *structpb.Struct, key string) string {
	if s == nil {
		return ""
	}
	v, ok := s.GetFields()[key]
	if !ok {
		return ""
	}
	return v.GetStringValue()
}
