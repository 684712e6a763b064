package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"film-assistant-be/pkg/llm"
)

func TestDecodeAddResource(t *testing.T) {
	act, err := Decode(llm.ToolCall{Name: NameAddResource, Arguments: `{"content":"Inception was released in 2010."}`})
	require.NoError(t, err)
	add, ok := act.(AddResource)
	require.True(t, ok)
	assert.Equal(t, "Inception was released in 2010.", add.Content)
}

func TestDecodeGetInformation(t *testing.T) {
	act, err := Decode(llm.ToolCall{Name: NameGetInformation, Arguments: `{"question":"Who directed Inception?"}`})
	require.NoError(t, err)
	get, ok := act.(GetInformation)
	require.True(t, ok)
	assert.Equal(t, "Who directed Inception?", get.Question)
}

func TestDecodeUnknownName(t *testing.T) {
	act, err := Decode(llm.ToolCall{Name: "deleteEverything", Arguments: `{}`})
	require.NoError(t, err)
	unknown, ok := act.(Unknown)
	require.True(t, ok)
	assert.Equal(t, "deleteEverything", unknown.Name)
}

func TestDecodeMalformedArguments(t *testing.T) {
	_, err := Decode(llm.ToolCall{Name: NameAddResource, Arguments: `{"content":`})
	assert.Error(t, err)
}

func TestDecodeEmptyContent(t *testing.T) {
	_, err := Decode(llm.ToolCall{Name: NameAddResource, Arguments: `{"content":"   "}`})
	assert.Error(t, err)

	_, err = Decode(llm.ToolCall{Name: NameGetInformation, Arguments: `{"question":""}`})
	assert.Error(t, err)
}

func TestDefinitions(t *testing.T) {
	defs := Definitions()
	require.Len(t, defs, 2)

	names := []string{defs[0].Name, defs[1].Name}
	assert.Contains(t, names, NameAddResource)
	assert.Contains(t, names, NameGetInformation)

	for _, def := range defs {
		assert.NotEmpty(t, def.Description)
		assert.Equal(t, "object", def.Parameters["type"])
	}
}
