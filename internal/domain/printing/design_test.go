package printing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validContent = `{"content":[{"text":"$invoiceNumber"}]}`

func TestNewInvoiceDesign(t *testing.T) {
	tests := []struct {
		name        string
		designName  string
		content     string
		expectError bool
		errorMsg    string
	}{
		{
			name:       "valid design",
			designName: "Clean",
			content:    validContent,
		},
		{
			name:        "empty name",
			designName:  "",
			content:     validContent,
			expectError: true,
			errorMsg:    "name cannot be empty",
		},
		{
			name:        "whitespace only name",
			designName:  "   ",
			content:     validContent,
			expectError: true,
			errorMsg:    "name cannot be empty",
		},
		{
			name:        "name too long",
			designName:  strings.Repeat("a", 101),
			content:     validContent,
			expectError: true,
			errorMsg:    "name cannot exceed 100 characters",
		},
		{
			name:        "empty content",
			designName:  "Clean",
			content:     "",
			expectError: true,
			errorMsg:    "content cannot be empty",
		},
		{
			name:        "content not JSON",
			designName:  "Clean",
			content:     "{broken",
			expectError: true,
			errorMsg:    "must be valid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			design, err := NewInvoiceDesign(tt.designName, tt.content)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.designName), design.Name)
			assert.Equal(t, DesignStatusActive, design.Status)
			assert.Equal(t, PageSizeA4, design.PageSize)
			assert.Equal(t, DefaultMargins(), design.Margins)
			assert.False(t, design.IsDefault)
			assert.NotEmpty(t, design.GetDomainEvents())
		})
	}
}

func TestInvoiceDesignSetAsDefault(t *testing.T) {
	design, err := NewInvoiceDesign("Clean", validContent)
	require.NoError(t, err)

	require.NoError(t, design.SetAsDefault())
	assert.True(t, design.IsDefault)

	// idempotent
	require.NoError(t, design.SetAsDefault())
}

func TestInvoiceDesignCannotDefaultInactive(t *testing.T) {
	design, err := NewInvoiceDesign("Clean", validContent)
	require.NoError(t, err)
	require.NoError(t, design.Deactivate())

	err = design.SetAsDefault()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactive")
}

func TestInvoiceDesignCannotDeactivateDefault(t *testing.T) {
	design, err := NewInvoiceDesign("Clean", validContent)
	require.NoError(t, err)
	require.NoError(t, design.SetAsDefault())

	err = design.Deactivate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default")
}

func TestInvoiceDesignUpdateContent(t *testing.T) {
	design, err := NewInvoiceDesign("Clean", validContent)
	require.NoError(t, err)
	version := design.GetVersion()

	require.NoError(t, design.UpdateContent(`{"content":[]}`))
	assert.Equal(t, `{"content":[]}`, design.Content)
	assert.Equal(t, version+1, design.GetVersion())

	require.Error(t, design.UpdateContent("not json"))
}

func TestInvoiceDesignCanBeUsed(t *testing.T) {
	design, err := NewInvoiceDesign("Clean", validContent)
	require.NoError(t, err)
	assert.True(t, design.CanBeUsed())

	require.NoError(t, design.Deactivate())
	assert.False(t, design.CanBeUsed())
}
