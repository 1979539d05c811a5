package service_test

import (
	"strings"
	"testing"

	"github.com/adboard/adboard-api/internal/serializer"
	"github.com/stretchr/testify/require"
)

func body(t *testing.T, raw string) serializer.Fields {
	t.Helper()
	f, err := serializer.DecodeFields(strings.NewReader(raw))
	require.NoError(t, err)
	return f
}
