package gstr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Finempire/Ecommerce-GST-App/cmd/gstr"
)

func TestGstrCommand_Metadata(t *testing.T) {
	assert.Equal(t, "gstr", gstr.Cmd.Use)
	assert.Contains(t, gstr.Cmd.Short, "GSTR-1")
	assert.NotNil(t, gstr.Cmd.Run)
}

func TestGstrCommand_Flags(t *testing.T) {
	assert.NotNil(t, gstr.Cmd.Flags().Lookup("gstin"))
	assert.NotNil(t, gstr.Cmd.Flags().Lookup("table14"))
	assert.NotNil(t, gstr.Cmd.Flags().Lookup("operator-gstin"))
}
