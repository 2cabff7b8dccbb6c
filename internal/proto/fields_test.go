package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestStrings_SkipsEmpty(t *testing.T) {
	s := Strings(map[string]string{FieldEmail: "a@example.com", FieldName: ""})

	assert.Len(t, s.GetFields(), 1)
	assert.Equal(t, "a@example.com", String(s, FieldEmail))
	assert.Equal(t, "", String(s, FieldName))
}

func TestString_NonString(t *testing.T) {
	s := &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldName: structpb.NewNumberValue(42),
	}}

	assert.Equal(t, "", String(s, FieldName))
	assert.Equal(t, "", String(nil, FieldName))
}

func TestFullMethod(t *testing.T) {
	assert.Equal(t, "/gophcourses.v1.AuthService/Login", FullMethod(MethodLogin))
}
