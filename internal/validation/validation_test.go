package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() TraversalRequest {
	maxDepth := 3
	return TraversalRequest{
		Query:    "Where is the Eiffel Tower?",
		Edges:    []EdgeSpecRequest{{Source: "country", Target: "country"}},
		Strategy: "eager",
		StartK:   4,
		MaxDepth: &maxDepth,
	}
}

func TestValidateAcceptsOmittedMaxDepth(t *testing.T) {
	req := validRequest()
	req.MaxDepth = nil

	err := New().Validate(req)
	assert.NoError(t, err)
}

func TestValidateRejectsMaxDepthOutOfRange(t *testing.T) {
	req := validRequest()
	tooDeep := 65
	req.MaxDepth = &tooDeep

	err := New().Validate(req)
	assert.Error(t, err)
}

func TestValidateAcceptsWellFormedRequest(t *testing.T) {
	err := New().Validate(validRequest())
	assert.NoError(t, err)
}

func TestValidateRejectsMissingQuery(t *testing.T) {
	req := validRequest()
	req.Query = ""

	err := New().Validate(req)
	require.Error(t, err)

	agg, ok := err.(Errors)
	require.True(t, ok)
	require.Len(t, agg.Errors, 1)
	assert.Equal(t, "query", agg.Errors[0].Field)
}

func TestValidateRejectsEmptyEdgeList(t *testing.T) {
	req := validRequest()
	req.Edges = nil

	err := New().Validate(req)
	require.Error(t, err)
}

func TestValidateRejectsUnrecognizedStrategy(t *testing.T) {
	req := validRequest()
	req.Strategy = "bogus"

	err := New().Validate(req)
	require.Error(t, err)
	agg := err.(Errors)
	assert.Equal(t, "ONEOF", agg.Errors[0].Code)
}

func TestValidateRejectsMMRLambdaOutOfRange(t *testing.T) {
	req := validRequest()
	req.MMRLambda = 1.5

	err := New().Validate(req)
	assert.Error(t, err)
}

func TestValidateRejectsEmptyStringInEdgeSpec(t *testing.T) {
	req := validRequest()
	req.Edges = []EdgeSpecRequest{{Source: "", Target: "category"}}

	err := New().Validate(req)
	assert.Error(t, err)
}

func TestGetReturnsSameSharedInstance(t *testing.T) {
	assert.Same(t, Get(), Get())
}
