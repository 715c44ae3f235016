package export_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Finempire/Ecommerce-GST-App/cmd/export"
)

func TestExportCommand_Metadata(t *testing.T) {
	assert.Equal(t, "export", export.Cmd.Use)
	assert.Contains(t, export.Cmd.Short, "flat GST CSV")
	assert.Contains(t, export.Cmd.Long, "14-column")
	assert.NotNil(t, export.Cmd.Run)
}
