package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolGet3DModel(t *testing.T) {
	d := newTestDeps(t)
	handler := ToolGet3DModel(d)

	_, byUUID, err := handler(context.Background(), nil, ModelInput{UUID: "m-0603"})
	require.NoError(t, err)
	assert.Equal(t, testOBJ, byUUID.OBJ)
	assert.Equal(t, 3, byUUID.Vertices)
	assert.Equal(t, 1, byUUID.Faces)
	assert.False(t, byUUID.Truncated)

	_, byPart, err := handler(context.Background(), nil, ModelInput{LCSCID: "C25804", MaxBytes: 10})
	require.NoError(t, err)
	assert.Equal(t, "m-0603", byPart.UUID)
	assert.Equal(t, "R0603_L1.6-W0.8-H0.6", byPart.Title)
	assert.Equal(t, "C25804", byPart.LCSCID)
	assert.Equal(t, testOBJ[:10], byPart.OBJ)
	assert.True(t, byPart.Truncated)
	assert.Equal(t, len(testOBJ), byPart.Bytes)
}

func TestToolGet3DModel_Errors(t *testing.T) {
	d := newTestDeps(t)
	handler := ToolGet3DModel(d)

	_, _, err := handler(context.Background(), nil, ModelInput{})
	requireCode(t, err, ErrCodeInvalidInput)

	_, _, err = handler(context.Background(), nil, ModelInput{UUID: "missing"})
	requireCode(t, err, ErrCodeNotFound)
}

func TestTruncateUTF8(t *testing.T) {
	s, cut := truncateUTF8("abéc", 3)
	assert.Equal(t, "ab", s)
	assert.True(t, cut)

	s, cut = truncateUTF8("abc", 10)
	assert.Equal(t, "abc", s)
	assert.False(t, cut)
}
