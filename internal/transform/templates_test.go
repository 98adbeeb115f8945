package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	assert.Equal(t, []string{
		"holiday_after_10", "holiday_after_5", "no_nlg", "no_riders",
		"premium_plus_10pct", "return_high", "return_low",
	}, registry.List())

	for _, name := range registry.List() {
		tmpl, ok := registry.Get(name)
		require.True(t, ok, name)

		result, err := ApplyTemplate(baseConfig(), tmpl)
		require.NoError(t, err, name)
		assert.NotNil(t, result)
	}
}

func TestTemplateRegistry_GetIsCaseInsensitive(t *testing.T) {
	registry := CreateBuiltInTemplates()

	tmpl, ok := registry.Get(" Return_High ")
	require.True(t, ok)
	result, err := ApplyTemplate(baseConfig(), tmpl)
	require.NoError(t, err)
	assert.Equal(t, "8", result.Policy.IllustratedReturnPct.String())

	_, ok = registry.Get("unknown")
	assert.False(t, ok)
}

func TestNoRidersTemplate(t *testing.T) {
	tmpl, _ := CreateBuiltInTemplates().Get("no_riders")

	result, err := ApplyTemplate(baseConfig(), tmpl)
	require.NoError(t, err)
	assert.True(t, result.Policy.CISumAssured.IsZero())
	assert.True(t, result.Policy.ECISumAssured.IsZero())
	assert.False(t, result.Policy.BaseSumAssured.IsZero())
}

func TestParseTemplateList(t *testing.T) {
	assert.Nil(t, ParseTemplateList(""))
	assert.Equal(t, []string{"return_low", "no_nlg"}, ParseTemplateList(" return_low, ,no_nlg "))
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates())
	assert.Contains(t, help, "holiday_after_5")
	assert.Contains(t, help, "ilpgo compare")

	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))
}
