package audit

import (
	"testing"

	"github.com/onboardly/dirprov/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalWarnings(t *testing.T) {
	encoded, err := marshalWarnings(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(encoded))

	encoded, err = marshalWarnings([]workflow.Warning{
		{Step: workflow.StepGroupAssignment, Target: "g2", Message: "group not found"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"step":"group_assignment","target":"g2","message":"group not found"}]`, string(encoded))
}
